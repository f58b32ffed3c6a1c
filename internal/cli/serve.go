package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mieza/pkg/api"
	"github.com/matzehuels/mieza/pkg/metrics"
	"github.com/matzehuels/mieza/pkg/observability"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The server exposes render, layout, netlist, and check endpoints under /v1,
plus /healthz and Prometheus metrics on /metrics. It shares the configured
cache with the CLI and shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), !noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, withMetrics bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := []api.Option{api.WithLogger(c.Logger)}
	if withMetrics {
		reg := metrics.NewRegistry()
		reg.Install()
		defer observability.Reset()
		opts = append(opts, api.WithMetrics(reg.Handler()))
	}

	return api.New(runner, c.Config, opts...).Serve(ctx)
}
