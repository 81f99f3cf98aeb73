// Package sqlsheet stores worksheets in a SQL table, one JSON cell array per
// row, so the journal can run on Postgres or SQLite instead of a hosted
// spreadsheet.
package sqlsheet

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/care-log/internal/sheet"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is one worksheet row.
type Row struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Spreadsheet string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_sheet_rows_position,priority:1"`
	Worksheet   string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_sheet_rows_position,priority:2"`
	RowNumber   int            `gorm:"not null;uniqueIndex:idx_sheet_rows_position,priority:3"`
	Cells       datatypes.JSON `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Row) TableName() string {
	return "sheet_rows"
}

func (r *Row) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Migrate creates or updates the sheet_rows table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Row{})
}

var _ sheet.Worksheet = (*Worksheet)(nil)

// Worksheet implements sheet.Worksheet on top of gorm.
type Worksheet struct {
	db          *gorm.DB
	spreadsheet string
	worksheet   string
}

func New(db *gorm.DB, spreadsheet, worksheet string) *Worksheet {
	return &Worksheet{db: db, spreadsheet: spreadsheet, worksheet: worksheet}
}

func (w *Worksheet) scoped(ctx context.Context) *gorm.DB {
	return w.db.WithContext(ctx).Model(&Row{}).
		Where("spreadsheet = ? AND worksheet = ?", w.spreadsheet, w.worksheet)
}

func (w *Worksheet) Values(ctx context.Context) ([][]string, error) {
	var rows []Row
	if err := w.scoped(ctx).Order("row_number ASC").Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([][]string, rows[len(rows)-1].RowNumber)
	for _, r := range rows {
		var cells []string
		if err := json.Unmarshal(r.Cells, &cells); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", r.RowNumber, err)
		}
		out[r.RowNumber-1] = cells
	}
	return out, nil
}

func (w *Worksheet) UpdateRow(ctx context.Context, rowNumber int, cells []string) error {
	if rowNumber < 1 {
		return fmt.Errorf("row number %d out of range", rowNumber)
	}
	payload, err := encodeCells(cells)
	if err != nil {
		return err
	}

	row := Row{
		Spreadsheet: w.spreadsheet,
		Worksheet:   w.worksheet,
		RowNumber:   rowNumber,
		Cells:       payload,
	}
	err = w.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "spreadsheet"}, {Name: "worksheet"}, {Name: "row_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"cells", "updated_at"}),
	}).Create(&row).Error
	return classify(err)
}

func (w *Worksheet) AppendRow(ctx context.Context, cells []string) error {
	payload, err := encodeCells(cells)
	if err != nil {
		return err
	}

	err = w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&Row{}).
			Where("spreadsheet = ? AND worksheet = ?", w.spreadsheet, w.worksheet).
			Select("COALESCE(MAX(row_number), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		return tx.Create(&Row{
			Spreadsheet: w.spreadsheet,
			Worksheet:   w.worksheet,
			RowNumber:   last + 1,
			Cells:       payload,
		}).Error
	})
	return classify(err)
}

func encodeCells(cells []string) (datatypes.JSON, error) {
	if cells == nil {
		cells = []string{}
	}
	payload, err := json.Marshal(cells)
	if err != nil {
		return nil, fmt.Errorf("encode cells: %w", err)
	}
	return datatypes.JSON(payload), nil
}

// classify marks connection loss, timeouts and append races as transient.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return sheet.Transient(err)
	default:
		return err
	}
}
