package config

import (
	"context"
	"fmt"
	"log"

	"github.com/blaisecz/care-log/internal/sheet"
	"github.com/blaisecz/care-log/internal/sheet/gsheets"
	"github.com/blaisecz/care-log/internal/sheet/sqlsheet"
	"google.golang.org/api/option"
)

// NewWorksheet opens the journal worksheet on the backend named by STORE_BACKEND.
func NewWorksheet(ctx context.Context, cfg *Config) (sheet.Worksheet, error) {
	switch cfg.StoreBackend {
	case BackendMemory:
		log.Println("[store] using in-memory worksheet; records are lost on exit")
		return sheet.NewMemory(), nil

	case BackendSQL:
		db, err := NewDatabase(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := sqlsheet.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		log.Printf("[store] using sql worksheet %s/%s", cfg.SpreadsheetName, cfg.WorksheetName)
		return sqlsheet.New(db, cfg.SpreadsheetName, cfg.WorksheetName), nil

	case BackendSheets:
		var opts []option.ClientOption
		if cfg.SheetsCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.SheetsCredentialsFile))
		}
		ws, err := gsheets.New(ctx, cfg.SheetsSpreadsheetID, cfg.WorksheetName, opts...)
		if err != nil {
			return nil, err
		}
		log.Printf("[store] using Google Sheets worksheet %s/%s", cfg.SheetsSpreadsheetID, cfg.WorksheetName)
		return ws, nil

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want %s, %s or %s)", cfg.StoreBackend, BackendMemory, BackendSQL, BackendSheets)
	}
}
