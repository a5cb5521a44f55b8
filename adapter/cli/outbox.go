package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/storeops/siteline/internal/app"
	"github.com/storeops/siteline/pkg/config"
)

func newOutboxCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	outbox := &cobra.Command{
		Use:   "outbox",
		Short: "Outbox maintenance",
	}

	drain := &cobra.Command{
		Use:   "drain",
		Short: "Publish pending outbox messages once and exit",
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

			return container.OutboxProcessor.ProcessBatch(ctx)
		},
	}

	outbox.AddCommand(drain)
	return outbox
}
