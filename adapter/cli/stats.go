package cli

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/storeops/siteline/internal/app"
	"github.com/storeops/siteline/internal/expansion/application/queries"
	"github.com/storeops/siteline/pkg/config"
)

func newStatsCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print expansion statistics as JSON",
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

			dto, err := container.Statistics.Handle(ctx, queries.StatisticsQuery{})
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(dto)
		},
	}
}
