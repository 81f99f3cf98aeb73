package main

import (
	"fmt"
	"time"

	"github.com/blaisecz/care-log/internal/config"
	"github.com/blaisecz/care-log/internal/repository"
	"github.com/blaisecz/care-log/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the journal with sample history",
		Long: `Write sample daily records for the last N days, ending today.

Dates that already have a record are skipped, so the command is safe to run
again. The store is chosen with STORE_BACKEND.`,
		Example: `  carelog seed
  carelog seed --days 90
  STORE_BACKEND=sheets carelog seed --days 14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			ws, err := config.NewWorksheet(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			repo := repository.NewDailyRecordRepository(ws, cfg.StoreMaxRetries)

			created, err := seed.Run(cmd.Context(), repo, days, time.Now(), nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d records (%d days requested)\n", created, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", seed.DefaultDays, "number of days of history to create")
	return cmd
}
