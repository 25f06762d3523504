// Package main provides the scrublog CLI for redacting sensitive fields from
// JSON payloads and log streams.
//
// scrublog wraps the pkg/sanitize engine for use in pipelines: one-shot
// sanitization of JSON documents, pre-flight sensitive-data checks, rule
// inspection, and continuous stream scrubbing with live rule reload.
package main

import (
	"fmt"
	"os"

	"github.com/deedflow/scrublog/internal/cli/commands"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	// Handle special commands
	switch command {
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("scrublog version %s\n", version)
		os.Exit(0)
	}

	// Route to command implementations
	switch command {
	case "sanitize":
		commands.NewSanitizeCommand().Execute(args)
	case "detect":
		commands.NewDetectCommand().Execute(args)
	case "rules":
		commands.NewRulesCommand().Execute(args)
	case "tail":
		commands.NewTailCommand().Execute(args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `scrublog - redact sensitive fields from JSON and log streams

Usage: scrublog <command> [flags]

Commands:
  sanitize   Sanitize a JSON value from a file or stdin
  detect     Check a JSON value for sensitive fields (exit 1 when found)
  rules      Print the effective redaction rules in evaluation order
  tail       Scrub a log stream line by line
  version    Print version information
  help       Show this help

Run 'scrublog <command> --help' for command-specific flags.

Environment:
  SCRUBLOG_LOG_LEVEL   Override the configured log level
  SCRUBLOG_DISABLED    Disable log output entirely ("1" or "true")
`)
}
