package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mieza/pkg/layout"
	"github.com/matzehuels/mieza/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a schematic from a saved layout",
		Long: `Render a schematic from a saved layout.

The visualize command takes a layout file (produced by 'layout' or
'render -f json') and draws it as SVG, PNG, or PDF. The layout carries every
position and wire, so this step never re-runs placement. Net labels need the
source circuit and are not available here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &opts, &flags)
			return c.runVisualize(cmd.Context(), args[0], opts, flags)
		},
	}

	c.addRenderFlags(cmd, &opts, &flags)
	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	l, err := layout.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	opts.Source = input
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Rendering schematic...")
	spinner.Start()
	artifacts, err := pipeline.RenderLayout(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	paths := outputPaths(flags.output, input, opts.Formats)
	for _, f := range opts.Formats {
		if err := writeOutput(paths[f], artifacts[f]); err != nil {
			return err
		}
	}

	printSuccess("Visualization complete")
	for _, f := range opts.Formats {
		printFile(paths[f])
	}
	printStats(len(l.Components), len(l.Connections), 0, false)
	return nil
}
