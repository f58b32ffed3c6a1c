package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mieza/pkg/pipeline"
)

// renderFlags holds the command-line flags shared by render and visualize.
type renderFlags struct {
	output    string // output file (single format) or base path (multiple)
	formats   string // comma-separated output formats
	from      string // source format override
	pinDots   bool
	netLabels bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [circuit]",
		Short: "Render a circuit to SVG, PNG, PDF, or layout JSON",
		Long: `Render a circuit to SVG, PNG, PDF, or layout JSON.

The circuit is read from a .cdl, .json, or .yaml file, or from standard input
when the argument is "-". With one format and no -o the output lands next to
the input (or on standard output for "-"); with several formats -o is a base
path and each format gets its own extension.

PNG and PDF require rsvg-convert (librsvg).`,
		Example: `  mieza render amp.cdl
  mieza render amp.cdl -f svg,png --theme dark --style iec
  cat amp.cdl | mieza render - > amp.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyRenderConfig(cmd, &opts, &flags)
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	c.addRenderFlags(cmd, &opts, &flags)
	cmd.Flags().StringVar(&flags.from, "from", "", "source format: cdl, json, yaml (default: from extension)")
	cmd.Flags().StringVar(&opts.View, "view", pipeline.ViewSchematic, "view: schematic, nodelink")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "run the checker first and fail on errors")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	return cmd
}

// addRenderFlags registers the drawing flags. Defaults are empty so config
// values can fill in whatever the user did not set.
func (c *CLI) addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "color theme: light, dark")
	cmd.Flags().StringVar(&opts.Style, "style", "", "symbol style: ieee, iec, din")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&flags.pinDots, "pin-dots", true, "draw dots on unconnected pins")
	cmd.Flags().BoolVar(&flags.netLabels, "net-labels", false, "label nets")
	cmd.Flags().StringVar(&opts.Title, "title", "", "SVG title")
}

// applyRenderConfig fills unset render options from the config file.
func (c *CLI) applyRenderConfig(cmd *cobra.Command, opts *pipeline.Options, flags *renderFlags) {
	rc := c.Config.Render
	if flags.formats == "" {
		flags.formats = rc.Format
	}
	opts.Formats = parseFormats(flags.formats)
	if opts.Theme == "" {
		opts.Theme = rc.Theme
	}
	if opts.Style == "" {
		opts.Style = rc.Style
	}
	if opts.Scale == 0 {
		opts.Scale = rc.Scale
	}
	pinDots := flags.pinDots
	if !cmd.Flags().Changed("pin-dots") {
		pinDots = rc.PinDots
	}
	opts.NoPinDots = !pinDots
	opts.NetLabels = flags.netLabels
	if !cmd.Flags().Changed("net-labels") {
		opts.NetLabels = rc.NetLabels
	}
}

// runRender reads the circuit, runs the pipeline, and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	if err := c.readInput(input, flags.from, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if result.Report != nil {
		for _, d := range result.Report.Diagnostics {
			printDiagnostic(d)
		}
	}

	paths := outputPaths(flags.output, input, opts.Formats)
	for _, f := range opts.Formats {
		if err := writeOutput(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
	}
	prog.done("Rendered " + opts.Name)

	if toStdout(paths) {
		return nil
	}
	printSuccess("Render complete")
	for _, f := range opts.Formats {
		printFile(paths[f])
	}
	printStats(result.Stats.Components, result.Stats.Connections, result.Stats.Nets, result.CacheInfo.RenderHit)
	return nil
}

// outputPaths names the file for each format. A single format honours -o
// verbatim; stdin input without -o goes to standard output.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 {
		switch {
		case output != "":
			paths[formats[0]] = output
		case input == stdinArg:
			paths[formats[0]] = stdinArg
		default:
			paths[formats[0]] = basePath("", input) + "." + formats[0]
		}
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func toStdout(paths map[string]string) bool {
	for _, p := range paths {
		if p == stdinArg {
			return true
		}
	}
	return false
}
