package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/deedflow/scrublog/pkg/sanitize"
)

// DetectCommand implements the 'detect' command: a read-only pre-flight check
// reporting whether a payload contains fields that would be redacted.
type DetectCommand struct{}

// NewDetectCommand creates a new detect command instance.
func NewDetectCommand() *DetectCommand {
	return &DetectCommand{}
}

// Execute runs the detect command with the provided arguments.
func (c *DetectCommand) Execute(args []string) {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)

	configPath := fs.String("config", "", "Path to scrublog configuration file")
	quiet := fs.Bool("quiet", false, "Suppress output; report via exit code only")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scrublog detect [flags] [file]

Check a JSON value for sensitive fields without modifying it. Exits 0 when
the payload is clean and 1 when at least one field would be redacted.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Gate a CI artifact upload on the payload being clean
  scrublog detect --quiet export.json || echo "refusing to upload"
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

	found, err := c.run(s, in)
	if err != nil {
		exitWithError("%v", err)
	}

	if found {
		if !*quiet {
			fmt.Fprintln(os.Stderr, "sensitive data detected")
		}
		os.Exit(1)
	}
	if !*quiet {
		fmt.Println("no sensitive data found")
	}
}

// run reports whether the JSON document from in contains sensitive fields.
func (c *DetectCommand) run(s *sanitize.Sanitizer, in io.Reader) (bool, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return false, fmt.Errorf("input is not valid JSON: %w", err)
	}

	return s.ContainsSensitiveData(value), nil
}
