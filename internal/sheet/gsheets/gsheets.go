// Package gsheets backs a worksheet with the Google Sheets v4 API.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/blaisecz/care-log/internal/sheet"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// valueInput keeps cells as typed so dates and times are not reformatted.
const valueInput = "RAW"

var _ sheet.Worksheet = (*Worksheet)(nil)

// Worksheet is one tab of a Google spreadsheet.
type Worksheet struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	title         string
}

// New connects to the spreadsheet. Pass option.WithCredentialsFile for a
// service account, or endpoint/client options in tests.
func New(ctx context.Context, spreadsheetID, worksheet string, opts ...option.ClientOption) (*Worksheet, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Worksheet{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		title:         worksheet,
	}, nil
}

// a1 builds a range in A1 notation for this worksheet.
func (w *Worksheet) a1(cells string) string {
	quoted := "'" + strings.ReplaceAll(w.title, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}

func (w *Worksheet) Values(ctx context.Context) ([][]string, error) {
	resp, err := w.values.Get(w.spreadsheetID, w.a1("")).Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}

	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		out[i] = cells
	}
	return out, nil
}

func (w *Worksheet) UpdateRow(ctx context.Context, rowNumber int, cells []string) error {
	if rowNumber < 1 {
		return fmt.Errorf("row number %d out of range", rowNumber)
	}
	rng := w.a1(fmt.Sprintf("A%d", rowNumber))
	_, err := w.values.Update(w.spreadsheetID, rng, toValueRange(cells)).
		ValueInputOption(valueInput).
		Context(ctx).
		Do()
	return classify(err)
}

func (w *Worksheet) AppendRow(ctx context.Context, cells []string) error {
	_, err := w.values.Append(w.spreadsheetID, w.a1("A1"), toValueRange(cells)).
		ValueInputOption(valueInput).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return classify(err)
}

func toValueRange(cells []string) *sheets.ValueRange {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{row},
	}
}

// classify treats rate limiting, server errors and network timeouts as
// transient.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError {
			return sheet.Transient(err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return sheet.Transient(err)
	}
	return err
}
