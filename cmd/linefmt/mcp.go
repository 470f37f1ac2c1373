package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rahilshah3105/code-line-formatter/toolkit"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the built-in tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := a.catalog(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("mcp server starting", "tools", len(c.Tools()), "version", version)
			return toolkit.ServeStdio(ctx, c, version)
		},
	}
}
