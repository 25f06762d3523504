package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/deedflow/scrublog/pkg/sanitize"
)

// RulesCommand implements the 'rules' command: print the effective ordered
// rule table, built-ins first, custom rules after.
type RulesCommand struct{}

// NewRulesCommand creates a new rules command instance.
func NewRulesCommand() *RulesCommand {
	return &RulesCommand{}
}

// Execute runs the rules command with the provided arguments.
func (c *RulesCommand) Execute(args []string) {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)

	configPath := fs.String("config", "", "Path to scrublog configuration file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: scrublog rules [flags]

Print the effective redaction rules in evaluation order. The first matching
rule wins; custom rules from the configuration file are listed after the
built-in set.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	s, _, err := buildSanitizer(*configPath)
	if err != nil {
		exitWithError("%v", err)
	}

	c.run(s.Config(), os.Stdout)
}

// run writes the rule table to out.
func (c *RulesCommand) run(cfg sanitize.Config, out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "#\tKIND\tPATTERN\tSTYLE\tPRESERVE")
	for i, rule := range cfg.Rules {
		pattern := rule.Pattern
		if rule.Expr != nil {
			pattern = rule.Expr.String()
		}
		preserve := ""
		if rule.Style == sanitize.StylePartial {
			preserve = fmt.Sprintf("%d", rule.PreserveChars)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, rule.Kind, pattern, rule.Style, preserve)
	}
	_ = w.Flush()
}
