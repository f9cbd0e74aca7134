package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codeGROOVE-dev/stackscope/pkg/httpapi"
)

func newHTTPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e, err := setup(ctx, cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			addr := e.cfg.HTTPAddr
			if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" { //nolint:errcheck // flag is registered
				addr = flagAddr
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewHandler(httpapi.Deps{Service: e.svc, Logger: e.logger, Token: e.cfg.APIToken}),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(_ net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				e.logger.InfoContext(ctx, "stackscope listening", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
				e.logger.Info("shutting down")
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default $STACKSCOPE_HTTP_ADDR or 127.0.0.1:8080)")
	return cmd
}
