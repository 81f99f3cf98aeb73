package sqlsheet

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/blaisecz/care-log/internal/sheet"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sheet.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestWorksheet_EmptyHasNoRows(t *testing.T) {
	ws := New(openTestDB(t), "care-log", "journal")
	rows, err := ws.Values(context.Background())
	if err != nil {
		t.Fatalf("Values() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Values() = %v, want no rows", rows)
	}
}

func TestWorksheet_AppendUpdateValues(t *testing.T) {
	ctx := context.Background()
	ws := New(openTestDB(t), "care-log", "journal")

	steps := []func() error{
		func() error { return ws.AppendRow(ctx, []string{"date", "note"}) },
		func() error { return ws.AppendRow(ctx, []string{"2025-04-01", "first"}) },
		func() error { return ws.AppendRow(ctx, []string{"2025-04-02", "second"}) },
		func() error { return ws.UpdateRow(ctx, 2, []string{"2025-04-01", "rewritten"}) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}

	rows, err := ws.Values(ctx)
	if err != nil {
		t.Fatalf("Values() error = %v", err)
	}
	want := [][]string{
		{"date", "note"},
		{"2025-04-01", "rewritten"},
		{"2025-04-02", "second"},
	}
	if len(rows) != len(want) {
		t.Fatalf("Values() = %v, want %v", rows, want)
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("cell (%d,%d) = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestWorksheet_UpdateRowCreatesMissingRow(t *testing.T) {
	ctx := context.Background()
	ws := New(openTestDB(t), "care-log", "journal")

	if err := ws.UpdateRow(ctx, 1, []string{"date"}); err != nil {
		t.Fatalf("UpdateRow() error = %v", err)
	}
	if err := ws.UpdateRow(ctx, 1, []string{"date", "note"}); err != nil {
		t.Fatalf("UpdateRow() error = %v", err)
	}

	rows, _ := ws.Values(ctx)
	if len(rows) != 1 || len(rows[0]) != 2 {
		t.Errorf("Values() = %v, want the replaced header only", rows)
	}
}

func TestWorksheet_WorksheetsAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	a := New(db, "care-log", "journal")
	b := New(db, "care-log", "archive")

	if err := a.AppendRow(ctx, []string{"a"}); err != nil {
		t.Fatal(err)
	}
	if err := b.AppendRow(ctx, []string{"b"}); err != nil {
		t.Fatal(err)
	}

	rows, _ := b.Values(ctx)
	if len(rows) != 1 || rows[0][0] != "b" {
		t.Errorf("archive rows = %v", rows)
	}

	var count int64
	db.Model(&Row{}).Count(&count)
	if count != 2 {
		t.Errorf("row count = %d, want 2", count)
	}
}

func TestRow_BeforeCreateAssignsID(t *testing.T) {
	db := openTestDB(t)
	ws := New(db, "care-log", "journal")
	if err := ws.AppendRow(context.Background(), []string{"x"}); err != nil {
		t.Fatal(err)
	}
	var row Row
	if err := db.First(&row).Error; err != nil {
		t.Fatal(err)
	}
	if row.ID == uuid.Nil {
		t.Error("expected a generated row ID")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{name: "nil", err: nil},
		{name: "deadline", err: context.DeadlineExceeded, transient: true},
		{name: "duplicate key", err: gorm.ErrDuplicatedKey, transient: true},
		{name: "other", err: errors.New("syntax error")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if errors.Is(got, sheet.ErrUnavailable) != tt.transient {
				t.Errorf("classify(%v) = %v, transient want %v", tt.err, got, tt.transient)
			}
		})
	}
}
