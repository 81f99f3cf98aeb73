package main

import (
	"errors"
	"fmt"

	"github.com/blaisecz/care-log/internal/config"
	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/repository"
	"github.com/spf13/cobra"
)

func newCheckSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-schema",
		Short: "Verify the record store header and rows",
		Long: `Write the journal header to an empty worksheet, or check that an existing
header has exactly the expected columns, then decode every row.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := config.NewWorksheet(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			repo := repository.NewDailyRecordRepository(ws, cfg.StoreMaxRetries)
			out := cmd.OutOrStdout()

			if err := repo.EnsureSchema(cmd.Context()); err != nil {
				if errors.Is(err, domain.ErrSchemaMismatch) {
					fmt.Fprintf(out, "Expected columns: %v\n", repository.ExpectedHeader())
				}
				return err
			}
			records, err := repo.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Schema OK: %d columns, %d records\n", len(repository.ExpectedHeader()), len(records))
			return nil
		},
	}
}
