// Package sheet models a single worksheet: a header row followed by data rows
// of string cells, addressed by spreadsheet and worksheet name.
package sheet

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks a transient backend failure worth retrying.
var ErrUnavailable = errors.New("worksheet temporarily unavailable")

// Worksheet is the minimal tabular store the journal needs. Row numbers are
// 1-based and row 1 is the header.
type Worksheet interface {
	// Values returns every row, header first. An empty worksheet returns no rows.
	Values(ctx context.Context) ([][]string, error)
	// UpdateRow replaces all cells of one row in a single call.
	UpdateRow(ctx context.Context, rowNumber int, cells []string) error
	// AppendRow adds a row after the last non-empty row.
	AppendRow(ctx context.Context, cells []string) error
}

// Transient wraps err so that errors.Is(err, ErrUnavailable) holds.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
