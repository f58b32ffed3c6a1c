package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mieza/pkg/check"
	"github.com/matzehuels/mieza/pkg/pipeline"
)

// checkCommand creates the check command for linting a circuit.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		from     string
		asJSON   bool
		disabled []string
	)

	cmd := &cobra.Command{
		Use:   "check [circuit]",
		Short: "Report problems in a circuit without drawing it",
		Long: `Report problems in a circuit without drawing it.

Errors are the problems that would make render fail: duplicate ids, unknown
component types, invalid rotations, references to missing components or pins.
Warnings flag legal but suspicious wiring: unconnected pins, undriven digital
inputs, shorted sources, and values that do not parse.

The command exits non-zero only when there are errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0], from, asJSON, disabled)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source format: cdl, json, yaml (default: from extension)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringSliceVar(&disabled, "disable", nil, "rules to skip (e.g. unconnected-pin)")

	return cmd
}

// runCheck parses the circuit and prints every diagnostic.
func (c *CLI) runCheck(ctx context.Context, input, from string, asJSON bool, disabled []string) error {
	opts := pipeline.Options{Logger: c.Logger}
	if err := c.readInput(input, from, &opts); err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, nil, c.Logger)
	defer runner.Close()

	circ, err := runner.Parse(ctx, opts)
	if err != nil {
		return err
	}

	rules := make([]check.Rule, len(disabled))
	for i, r := range disabled {
		rules[i] = check.Rule(r)
	}
	report := check.Run(runner.Registry, circ, check.Disable(rules...))

	if asJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if err := writeOutput(stdinArg, append(data, '\n')); err != nil {
			return err
		}
		return report.Err()
	}

	for _, d := range report.Diagnostics {
		printDiagnostic(d)
	}
	if report.HasErrors() {
		return report.Err()
	}

	printSuccess("%s looks good", opts.Name)
	if n := len(report.Warnings()); n > 0 {
		printDetail("%s", plural(n, "warning"))
	}
	return nil
}
