package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/sheet"
)

func newTestRepository(ws sheet.Worksheet, retries int) *dailyRecordRepository {
	r := NewDailyRecordRepository(ws, retries).(*dailyRecordRepository)
	r.interval = time.Millisecond
	return r
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func mustTime(t *testing.T, s string) *domain.TimeOfDay {
	t.Helper()
	tod, err := domain.ParseTimeOfDay(s)
	if err != nil {
		t.Fatal(err)
	}
	return &tod
}

func sampleRecord(t *testing.T, date string) *domain.DailyRecord {
	t.Helper()
	return &domain.DailyRecord{
		Date:       mustDate(t, date),
		SleepStart: mustTime(t, "23:45"),
		SleepEnd:   mustTime(t, "06:45"),
		WorkloadScores: map[domain.WorkloadDimension]int{
			domain.WorkloadMentalDemand:   6,
			domain.WorkloadPhysicalDemand: 8,
			domain.WorkloadTemporalDemand: 0,
			domain.WorkloadEffort:         5,
			domain.WorkloadPerformance:    7,
			domain.WorkloadFrustration:    2,
		},
		SymptomScores: map[domain.Symptom]int{
			domain.SymptomShoulderHeaviness: 3,
			domain.SymptomHeadache:          1,
		},
		WhatHappened: "long meeting, tight deadline",
		HowItFelt:    "tired",
		WhatWasDone:  "stretched, slept early",
	}
}

// lossyWorksheet applies an append and then reports a transient failure, as
// if the response was lost in transit.
type lossyWorksheet struct {
	*sheet.Memory
	lose int
}

func (l *lossyWorksheet) AppendRow(ctx context.Context, cells []string) error {
	if err := l.Memory.AppendRow(ctx, cells); err != nil {
		return err
	}
	if l.lose > 0 {
		l.lose--
		return sheet.Transient(errors.New("connection reset after write"))
	}
	return nil
}

func TestEnsureSchema(t *testing.T) {
	reordered := ExpectedHeader()
	reordered[0], reordered[len(reordered)-1] = reordered[len(reordered)-1], reordered[0]

	tests := []struct {
		name    string
		rows    [][]string
		wantErr error
		writes  int
	}{
		{name: "empty worksheet gets header", rows: nil, writes: 1},
		{name: "blank header row gets header", rows: [][]string{{"", ""}}, writes: 1},
		{name: "matching header", rows: [][]string{ExpectedHeader()}},
		{name: "reordered header", rows: [][]string{reordered}},
		{name: "foreign header", rows: [][]string{{"date", "A", "B"}}, wantErr: domain.ErrSchemaMismatch},
		{name: "extra column", rows: [][]string{append(ExpectedHeader(), "mood")}, wantErr: domain.ErrSchemaMismatch},
		{name: "duplicate column", rows: [][]string{append(ExpectedHeader(), "date")}, wantErr: domain.ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := sheet.NewMemory(tt.rows...)
			err := newTestRepository(ws, 3).EnsureSchema(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EnsureSchema() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EnsureSchema() error = %v", err)
			}
			if ws.Writes() != tt.writes {
				t.Errorf("writes = %d, want %d", ws.Writes(), tt.writes)
			}
			if len(ws.Rows()) == 0 {
				t.Error("expected a header row")
			}
		})
	}
}

func TestReads_SchemaMismatchReturnsNoRows(t *testing.T) {
	ws := sheet.NewMemory(
		[]string{"date", "A", "B"},
		[]string{"2025-04-01", "1", "2"},
	)
	repo := newTestRepository(ws, 3)
	ctx := context.Background()

	records, err := repo.LoadAll(ctx)
	if !errors.Is(err, domain.ErrSchemaMismatch) {
		t.Fatalf("LoadAll() error = %v, want ErrSchemaMismatch", err)
	}
	if records != nil {
		t.Errorf("LoadAll() returned %d records alongside the error", len(records))
	}

	rec, err := repo.FindByDate(ctx, mustDate(t, "2025-04-01"))
	if !errors.Is(err, domain.ErrSchemaMismatch) || rec != nil {
		t.Fatalf("FindByDate() = %v, %v; want nil, ErrSchemaMismatch", rec, err)
	}

	if err := repo.Upsert(ctx, sampleRecord(t, "2025-04-02")); !errors.Is(err, domain.ErrSchemaMismatch) {
		t.Fatalf("Upsert() error = %v, want ErrSchemaMismatch", err)
	}
	if ws.Writes() != 0 {
		t.Errorf("writes = %d, want 0", ws.Writes())
	}
}

func TestUpsert_RoundTrip(t *testing.T) {
	repo := newTestRepository(sheet.NewMemory(), 3)
	ctx := context.Background()

	in := sampleRecord(t, "2025-04-01")
	if err := repo.Upsert(ctx, in); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.FindByDate(ctx, mustDate(t, "2025-04-01"))
	if err != nil {
		t.Fatalf("FindByDate() error = %v", err)
	}

	if !got.Date.Equal(in.Date) {
		t.Errorf("Date = %v, want %v", got.Date, in.Date)
	}
	if got.SleepStart.String() != "23:45" || got.SleepEnd.String() != "06:45" {
		t.Errorf("sleep = %s-%s", got.SleepStart, got.SleepEnd)
	}
	if got.SleepDurationHours == nil || *got.SleepDurationHours != 7 {
		t.Errorf("SleepDurationHours = %v, want 7", got.SleepDurationHours)
	}
	if len(got.WorkloadScores) != 6 || got.WorkloadScores[domain.WorkloadPhysicalDemand] != 8 || got.WorkloadScores[domain.WorkloadTemporalDemand] != 0 {
		t.Errorf("WorkloadScores = %v", got.WorkloadScores)
	}
	if len(got.SymptomScores) != 2 || got.SymptomScores[domain.SymptomShoulderHeaviness] != 3 {
		t.Errorf("SymptomScores = %v", got.SymptomScores)
	}
	if got.WhatHappened != in.WhatHappened || got.HowItFelt != in.HowItFelt || got.WhatWasDone != in.WhatWasDone {
		t.Errorf("reflections = %q / %q / %q", got.WhatHappened, got.HowItFelt, got.WhatWasDone)
	}
}

func TestUpsert_UnavailableDurationRoundTrips(t *testing.T) {
	repo := newTestRepository(sheet.NewMemory(), 3)
	ctx := context.Background()

	in := &domain.DailyRecord{Date: mustDate(t, "2025-04-01"), SleepStart: mustTime(t, "23:00")}
	if err := repo.Upsert(ctx, in); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	got, err := repo.FindByDate(ctx, in.Date)
	if err != nil {
		t.Fatalf("FindByDate() error = %v", err)
	}
	if got.SleepEnd != nil || got.SleepDurationHours != nil {
		t.Errorf("got end %v duration %v, want both unset", got.SleepEnd, got.SleepDurationHours)
	}
	if len(got.SymptomScores) != 0 {
		t.Errorf("SymptomScores = %v, want empty", got.SymptomScores)
	}
}

func TestUpsert_IsIdempotentPerDate(t *testing.T) {
	ws := sheet.NewMemory()
	repo := newTestRepository(ws, 3)
	ctx := context.Background()

	first := sampleRecord(t, "2025-04-01")
	second := sampleRecord(t, "2025-04-01")
	second.HowItFelt = "better after a nap"
	second.SymptomScores = map[domain.Symptom]int{domain.SymptomSleepiness: 2}

	for _, rec := range []*domain.DailyRecord{first, second, second} {
		if err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	records, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("LoadAll() returned %d records, want 1", len(records))
	}
	got := records[0]
	if got.HowItFelt != "better after a nap" {
		t.Errorf("HowItFelt = %q", got.HowItFelt)
	}
	if len(got.SymptomScores) != 1 || got.SymptomScores[domain.SymptomSleepiness] != 2 {
		t.Errorf("SymptomScores = %v, want only sleepiness", got.SymptomScores)
	}
	if n := len(ws.Rows()); n != 2 {
		t.Errorf("worksheet rows = %d, want header plus one", n)
	}
}

func TestUpsert_RecomputesDuration(t *testing.T) {
	repo := newTestRepository(sheet.NewMemory(), 3)
	ctx := context.Background()

	bogus := 99.0
	rec := sampleRecord(t, "2025-04-01")
	rec.SleepDurationHours = &bogus

	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	got, _ := repo.FindByDate(ctx, rec.Date)
	if got.SleepDurationHours == nil || *got.SleepDurationHours != 7 {
		t.Errorf("SleepDurationHours = %v, want 7", got.SleepDurationHours)
	}
}

func TestUpsert_WritesInHeaderOrder(t *testing.T) {
	header := ExpectedHeader()
	for i, j := 0, len(header)-1; i < j; i, j = i+1, j-1 {
		header[i], header[j] = header[j], header[i]
	}
	ws := sheet.NewMemory(header)
	repo := newTestRepository(ws, 3)

	if err := repo.Upsert(context.Background(), sampleRecord(t, "2025-04-01")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	row := ws.Rows()[1]
	if row[len(row)-1] != "2025-04-01" {
		t.Errorf("last cell = %q, want the date", row[len(row)-1])
	}
	if row[0] != "stretched, slept early" {
		t.Errorf("first cell = %q, want what_was_done", row[0])
	}
}

func TestUpsert_RejectsInvalidRecord(t *testing.T) {
	ws := sheet.NewMemory()
	repo := newTestRepository(ws, 3)

	rec := sampleRecord(t, "2025-04-01")
	rec.SymptomScores[domain.SymptomHeadache] = 9

	err := repo.Upsert(context.Background(), rec)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("Upsert() error = %v, want ErrInvalidInput", err)
	}
	if ws.Calls() != 0 {
		t.Errorf("store calls = %d, want 0", ws.Calls())
	}
}

func TestFindByDate_NotFound(t *testing.T) {
	repo := newTestRepository(sheet.NewMemory(ExpectedHeader()), 3)
	_, err := repo.FindByDate(context.Background(), mustDate(t, "2025-04-01"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindByDate() error = %v, want ErrNotFound", err)
	}
}

func TestLoadAll_MalformedRowAbortsRead(t *testing.T) {
	header := ExpectedHeader()
	good := make([]string, len(header))
	bad := make([]string, len(header))
	good[0], bad[0] = "2025-04-01", "2025-04-02"
	bad[1] = "very high"

	repo := newTestRepository(sheet.NewMemory(header, good, bad), 3)
	records, err := repo.LoadAll(context.Background())
	if !errors.Is(err, domain.ErrMalformedRow) {
		t.Fatalf("LoadAll() error = %v, want ErrMalformedRow", err)
	}
	if records != nil {
		t.Errorf("LoadAll() returned %d records alongside the error", len(records))
	}
}

func TestLoadAll_SkipsBlankRows(t *testing.T) {
	header := ExpectedHeader()
	row := make([]string, len(header))
	row[0] = "2025-04-01"

	repo := newTestRepository(sheet.NewMemory(header, nil, make([]string, len(header)), row), 3)
	records, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("LoadAll() returned %d records, want 1", len(records))
	}
}

func TestRetry_TransientFailures(t *testing.T) {
	transient := func() error { return sheet.Transient(errors.New("503 backend error")) }

	tests := []struct {
		name      string
		failures  []error
		wantErr   error
		wantCalls int
	}{
		{name: "recovers after two failures", failures: []error{transient(), transient()}, wantCalls: 3},
		{name: "gives up after retries", failures: []error{transient(), transient(), transient(), transient()}, wantErr: domain.ErrStoreUnavailable, wantCalls: 4},
		{name: "permanent failure is not retried", failures: []error{errors.New("403 forbidden")}, wantErr: domain.ErrStoreFailure, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := sheet.NewMemory(ExpectedHeader())
			ws.FailNext(tt.failures...)
			repo := newTestRepository(ws, 3)

			_, err := repo.LoadAll(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadAll() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, tt.failures[0]) {
					t.Errorf("error %v should keep the raw cause", err)
				}
				if tt.wantErr == domain.ErrStoreFailure && errors.Is(err, domain.ErrStoreUnavailable) {
					t.Errorf("permanent failure %v reported as retryable", err)
				}
			} else if err != nil {
				t.Fatalf("LoadAll() error = %v", err)
			}
			if ws.Calls() != tt.wantCalls {
				t.Errorf("store calls = %d, want %d", ws.Calls(), tt.wantCalls)
			}
		})
	}
}

func TestUpsert_LostAppendResponseDoesNotDuplicate(t *testing.T) {
	ws := &lossyWorksheet{Memory: sheet.NewMemory(ExpectedHeader()), lose: 1}
	repo := newTestRepository(ws, 3)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleRecord(t, "2025-04-01")); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	records, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("LoadAll() returned %d records, want 1", len(records))
	}
}

func TestUpsert_ConcurrentWritersKeepOneRowPerDate(t *testing.T) {
	ws := sheet.NewMemory()
	repo := newTestRepository(ws, 3)
	ctx := context.Background()

	recs := make([]*domain.DailyRecord, 20)
	for i := range recs {
		recs[i] = sampleRecord(t, fmt.Sprintf("2025-04-%02d", 1+i%5))
		recs[i].WhatHappened = fmt.Sprintf("writer %d", i)
	}

	var wg sync.WaitGroup
	for _, rec := range recs {
		wg.Add(1)
		go func(rec *domain.DailyRecord) {
			defer wg.Done()
			if err := repo.Upsert(ctx, rec); err != nil {
				t.Errorf("Upsert() error = %v", err)
			}
		}(rec)
	}
	wg.Wait()

	records, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(records) != 5 {
		t.Errorf("LoadAll() returned %d records, want 5", len(records))
	}
}

func TestRetry_CancelledContextIsUnavailable(t *testing.T) {
	ws := sheet.NewMemory(ExpectedHeader())
	repo := newTestRepository(ws, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.LoadAll(ctx)
	if !errors.Is(err, domain.ErrStoreUnavailable) || !errors.Is(err, context.Canceled) {
		t.Fatalf("LoadAll() error = %v, want ErrStoreUnavailable wrapping context.Canceled", err)
	}
}

func TestUpsert_FreeTextRoundTripsVerbatim(t *testing.T) {
	repo := newTestRepository(sheet.NewMemory(), 3)
	ctx := context.Background()

	in := &domain.DailyRecord{
		Date:         mustDate(t, "2025-04-03"),
		WhatHappened: "  indented note\n",
		HowItFelt:    "line one\nline two\n",
		WhatWasDone:  "\ttabbed ",
	}
	if err := repo.Upsert(ctx, in); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.FindByDate(ctx, in.Date)
	if err != nil {
		t.Fatalf("FindByDate() error = %v", err)
	}
	if got.WhatHappened != in.WhatHappened {
		t.Errorf("WhatHappened = %q, want %q", got.WhatHappened, in.WhatHappened)
	}
	if got.HowItFelt != in.HowItFelt {
		t.Errorf("HowItFelt = %q, want %q", got.HowItFelt, in.HowItFelt)
	}
	if got.WhatWasDone != in.WhatWasDone {
		t.Errorf("WhatWasDone = %q, want %q", got.WhatWasDone, in.WhatWasDone)
	}
}
