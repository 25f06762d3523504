package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/deedflow/scrublog/internal/config"
	"github.com/deedflow/scrublog/pkg/sanitize"
)

// TailCommand implements the 'tail' command: a line-oriented stream scrubber
// for piping logs through. JSON lines are sanitized structurally; anything
// else goes through the free-form text scrubber.
type TailCommand struct{}

// NewTailCommand creates a new tail command instance.
func NewTailCommand() *TailCommand {
	return &TailCommand{}
}

// Execute runs the tail command with the provided arguments.
func (c *TailCommand) Execute(args []string) {
	fs := flag.NewFlagSet("tail", flag.ExitOnError)

	configPath := fs.String("config", "", "Path to scrublog configuration file")
	watch := fs.Bool("watch", false, "Reload rules when the config file changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scrublog tail [flags]

Read log lines from stdin and write sanitized lines to stdout. Lines that
parse as JSON are sanitized field by field; other lines pass through the
free-form text scrubber.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Scrub an application's log stream before shipping it
  ./app 2>&1 | scrublog tail --config scrublog.yaml --watch >> app.log
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	s, _, err := buildSanitizer(*configPath)
	if err != nil {
		exitWithError("%v", err)
	}

	var current atomic.Pointer[sanitize.Sanitizer]
	current.Store(s)

	if *watch {
		if *configPath == "" {
			exitWithError("--watch requires --config")
		}
		watcher, err := config.NewWatcher(*configPath)
		if err != nil {
			exitWithError("%v", err)
		}
		go watcher.Watch(context.Background(),
			func(cfg *config.Config) {
				sc, err := cfg.SanitizeConfig()
				if err != nil {
					fmt.Fprintf(os.Stderr, "scrublog: config reload rejected: %v\n", err)
					return
				}
				current.Store(sanitize.New(sc))
			},
			func(err error) {
				fmt.Fprintf(os.Stderr, "scrublog: watch error: %v\n", err)
			},
		)
		defer func() { _ = watcher.Stop() }()
	}

	if err := c.run(&current, os.Stdin, os.Stdout); err != nil {
		exitWithError("%v", err)
	}
}

// run scrubs lines from in until EOF. The sanitizer is re-read per line so a
// watcher-driven swap takes effect mid-stream.
func (c *TailCommand) run(current *atomic.Pointer[sanitize.Sanitizer], in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		s := current.Load()

		var value any
		if err := json.Unmarshal([]byte(line), &value); err != nil {
			fmt.Fprintln(out, sanitize.ScrubText(line))
			continue
		}

		encoded, err := json.Marshal(s.Sanitize(value))
		if err != nil {
			fmt.Fprintln(out, sanitize.ScrubText(line))
			continue
		}
		fmt.Fprintln(out, string(encoded))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input stream: %w", err)
	}
	return nil
}
