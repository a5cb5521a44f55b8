package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
	"github.com/storeops/siteline/internal/shared/infrastructure/migrations"
	"github.com/storeops/siteline/pkg/config"
)

func newMigrateCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			conn, err := database.Connect(ctx, database.Config{
				URL:      cfg.DatabaseURL,
				MaxConns: cfg.DatabaseMaxConns,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := conn.Close(); err != nil {
					logger.Error("failed to close connection", "error", err)
				}
			}()

			if err := migrations.Run(ctx, conn); err != nil {
				return err
			}
			logger.Info("schema applied", "driver", conn.Driver())
			return nil
		},
	}
}
