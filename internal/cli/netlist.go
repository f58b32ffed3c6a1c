package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mieza/pkg/pipeline"
)

// netlistCommand creates the netlist command for exporting connectivity.
func (c *CLI) netlistCommand() *cobra.Command {
	var (
		output string
		from   string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "netlist [circuit]",
		Short: "Export a circuit's connectivity as a SPICE or JSON netlist",
		Long: `Export a circuit's connectivity as a SPICE or JSON netlist.

Nets are resolved from connections and named nets; ground pins join net 0.
The netlist is written to standard output unless -o is given.`,
		Example: `  mieza netlist amp.cdl
  mieza netlist amp.cdl --format json -o amp.net.json
  mieza netlist amp.cdl --models --title "Common emitter amp"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNetlist(cmd.Context(), args[0], from, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", stdinArg, "output file (default: standard output)")
	cmd.Flags().StringVar(&from, "from", "", "source format: cdl, json, yaml (default: from extension)")
	cmd.Flags().StringVar(&opts.NetlistFormat, "format", pipeline.NetlistSPICE, "netlist format: spice, json")
	cmd.Flags().StringVar(&opts.NetlistTitle, "title", "", "SPICE title line (default: file name)")
	cmd.Flags().BoolVar(&opts.Models, "models", false, "emit default .model cards for semiconductors")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runNetlist resolves nets and writes the exported netlist.
func (c *CLI) runNetlist(ctx context.Context, input, from string, opts pipeline.Options, output string) error {
	if err := c.readInput(input, from, &opts); err != nil {
		return err
	}
	if opts.NetlistTitle == "" && input != stdinArg {
		opts.NetlistTitle = input
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if err := writeOutput(output, result.Netlist); err != nil {
		return err
	}
	if output == stdinArg {
		return nil
	}

	printSuccess("Netlist exported")
	printFile(output)
	printStats(result.Stats.Components, result.Stats.Connections, result.Stats.Nets, result.CacheInfo.NetlistHit)
	return nil
}
