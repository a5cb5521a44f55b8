// Package cli provides the siteline command line interface.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/storeops/siteline/pkg/config"
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "siteline",
		Short: "Store expansion candidate site tracker",
		Long: `siteline tracks candidate retail locations through the expansion
lifecycle: registration, evaluation, follow-up, negotiation and contract.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(cfg, logger))
	root.AddCommand(newMigrateCmd(cfg, logger))
	root.AddCommand(newOutboxCmd(cfg, logger))
	root.AddCommand(newStatsCmd(cfg, logger))

	return root
}
