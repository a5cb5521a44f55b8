package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/storeops/siteline/adapter/api"
	"github.com/storeops/siteline/internal/app"
	"github.com/storeops/siteline/pkg/config"
)

func newServeCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			container, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := container.Close(); err != nil {
					logger.Error("failed to close container", "error", err)
				}
			}()

			container.StartOutbox(ctx)

			serverCfg := api.DefaultServerConfig()
			if addr != "" {
				serverCfg.Addr = addr
			} else {
				serverCfg.Addr = cfg.HTTPAddr
			}
			server := api.NewServer(serverCfg, container, logger)

			errCh := make(chan error, 1)
			go func() {
				if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.WriteTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}
