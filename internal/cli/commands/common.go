// Package commands provides CLI command implementations for the scrublog
// tool.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/deedflow/scrublog/internal/config"
	"github.com/deedflow/scrublog/pkg/sanitize"
)

// buildSanitizer loads configuration (file, defaults, environment) and
// constructs the sanitizer for it.
func buildSanitizer(configPath string) (*sanitize.Sanitizer, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	sc, err := cfg.SanitizeConfig()
	if err != nil {
		return nil, nil, err
	}

	return sanitize.New(sc), cfg, nil
}

// openInput returns the input source for a command: the named file when a
// positional argument is given, stdin otherwise.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return os.Stdin, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return f, nil
}

// exitWithError prints an error message to stderr and exits with status 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
