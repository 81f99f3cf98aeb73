package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

const dateLayout = "2006-01-02"

// ErrInvalidCursor is returned for cursors that do not decode to a date.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor marks the last record date of a page. History is keyed by date, so
// the date alone positions the next page.
type Cursor struct {
	Date string `json:"date"`
}

// NewCursor builds a cursor positioned after the given date.
func NewCursor(date time.Time) *Cursor {
	return &Cursor{Date: date.Format(dateLayout)}
}

// Encode encodes the cursor to a base64 string
func (c *Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.URLEncoding.EncodeToString(data)
}

// Time returns the cursor date at midnight UTC.
func (c *Cursor) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, c.Date)
	if err != nil {
		return time.Time{}, ErrInvalidCursor
	}
	return t, nil
}

// DecodeCursor decodes a base64 cursor string
func DecodeCursor(encoded string) (*Cursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, ErrInvalidCursor
	}
	if _, err := cursor.Time(); err != nil {
		return nil, err
	}

	return &cursor, nil
}

// NormalizeLimit ensures limit is within bounds
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
