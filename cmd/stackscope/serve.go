package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/codeGROOVE-dev/stackscope/pkg/mcptool"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e, err := setup(ctx, cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			mcpSrv := mcptool.NewServer("stackscope", version, e.svc, e.logger)
			e.logger.InfoContext(ctx, "MCP server started (stdio transport)", "tool", mcptool.ToolName)
			err = server.NewStdioServer(mcpSrv).Listen(ctx, os.Stdin, os.Stdout)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
