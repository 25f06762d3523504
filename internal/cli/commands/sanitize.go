package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/deedflow/scrublog/pkg/sanitize"
)

// SanitizeCommand implements the 'sanitize' command: JSON in, redacted JSON
// out.
type SanitizeCommand struct{}

// NewSanitizeCommand creates a new sanitize command instance.
func NewSanitizeCommand() *SanitizeCommand {
	return &SanitizeCommand{}
}

// Execute runs the sanitize command with the provided arguments.
func (c *SanitizeCommand) Execute(args []string) {
	fs := flag.NewFlagSet("sanitize", flag.ExitOnError)

	configPath := fs.String("config", "", "Path to scrublog configuration file")
	pretty := fs.Bool("pretty", false, "Indent the sanitized JSON output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scrublog sanitize [flags] [file]

Read a JSON value from a file or stdin, redact sensitive fields, and write
the sanitized JSON to stdout.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Sanitize a payload from stdin
  cat payload.json | scrublog sanitize

  # Sanitize a file with custom rules, pretty-printed
  scrublog sanitize --config scrublog.yaml --pretty payload.json
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	s, _, err := buildSanitizer(*configPath)
	if err != nil {
		exitWithError("%v", err)
	}

	in, err := openInput(fs.Args())
	if err != nil {
		exitWithError("%v", err)
	}
	defer in.Close()

	if err := c.run(s, in, os.Stdout, *pretty); err != nil {
		exitWithError("%v", err)
	}
}

// run sanitizes a single JSON document from in and encodes the result to out.
func (c *SanitizeCommand) run(s *sanitize.Sanitizer, in io.Reader, out io.Writer, pretty bool) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("input is not valid JSON: %w", err)
	}

	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(s.Sanitize(value)); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
