package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mieza/pkg/layout"
	"github.com/matzehuels/mieza/pkg/pipeline"
)

// layoutCommand creates the layout command for computing circuit layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		from   string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [circuit]",
		Short: "Compute the layout of a circuit",
		Long: `Compute the layout of a circuit.

The layout command places every component, resolves every pin, and routes
every connection. The result is a layout.json file (same format as
'render -f json') that 'visualize' can draw without the source circuit.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], from, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&from, "from", "", "source format: cdl, json, yaml (default: from extension)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runLayout loads the circuit, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, from string, opts pipeline.Options, output string) error {
	if err := c.readInput(input, from, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}
	if outputPath == stdinArg {
		data, err := layout.Marshal(result.Layout)
		if err != nil {
			return err
		}
		return writeOutput(stdinArg, append(data, '\n'))
	}
	if err := layout.WriteFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.Components, result.Stats.Connections, result.Stats.Nets, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// layoutPath derives <input>.layout.json; stdin input writes to stdout.
func layoutPath(input string) string {
	if input == stdinArg {
		return stdinArg
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
