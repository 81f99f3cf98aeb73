package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/sheet"
	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxRetries bounds retries of a store operation after a transient failure.
const DefaultMaxRetries = 3

type DailyRecordRepository interface {
	EnsureSchema(ctx context.Context) error
	FindByDate(ctx context.Context, date time.Time) (*domain.DailyRecord, error)
	Upsert(ctx context.Context, record *domain.DailyRecord) error
	LoadAll(ctx context.Context) ([]domain.DailyRecord, error)
}

type dailyRecordRepository struct {
	ws         sheet.Worksheet
	maxRetries uint64
	interval   time.Duration

	// mu serializes upserts: the read-then-write is only safe with one writer.
	mu sync.Mutex
}

func NewDailyRecordRepository(ws sheet.Worksheet, maxRetries int) DailyRecordRepository {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &dailyRecordRepository{
		ws:         ws,
		maxRetries: uint64(maxRetries),
		interval:   250 * time.Millisecond,
	}
}

func (r *dailyRecordRepository) EnsureSchema(ctx context.Context) error {
	ctx, span := otel.Tracer("care-log/store").Start(ctx, "store.EnsureSchema")
	defer span.End()

	err := r.retry(ctx, "ensure schema", func() error {
		values, err := r.ws.Values(ctx)
		if err != nil {
			return err
		}
		_, err = r.ensureHeader(ctx, values)
		return err
	})
	return endSpan(span, err)
}

func (r *dailyRecordRepository) FindByDate(ctx context.Context, date time.Time) (*domain.DailyRecord, error) {
	records, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	key := domain.DateOf(date)
	for i := range records {
		if records[i].Date.Equal(key) {
			return &records[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *dailyRecordRepository) LoadAll(ctx context.Context) ([]domain.DailyRecord, error) {
	ctx, span := otel.Tracer("care-log/store").Start(ctx, "store.LoadAll")
	defer span.End()

	var records []domain.DailyRecord
	err := r.retry(ctx, "load", func() error {
		values, err := r.ws.Values(ctx)
		if err != nil {
			return err
		}
		records, err = decodeAll(values)
		return err
	})
	if err != nil {
		return nil, endSpan(span, err)
	}
	span.SetAttributes(attribute.Int("store.records", len(records)))
	return records, nil
}

func (r *dailyRecordRepository) Upsert(ctx context.Context, record *domain.DailyRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is required", domain.ErrInvalidInput)
	}
	if err := record.Validate(); err != nil {
		return err
	}
	record.Date = domain.DateOf(record.Date)
	record.RecomputeSleepDuration()

	ctx, span := otel.Tracer("care-log/store").Start(ctx, "store.Upsert")
	defer span.End()
	span.SetAttributes(attribute.String("record.date", record.DateKey()))

	r.mu.Lock()
	defer r.mu.Unlock()

	// The whole read-then-write is retried, so a write whose response was lost
	// is found by date on the next attempt instead of being appended twice.
	err := r.retry(ctx, "upsert "+record.DateKey(), func() error {
		values, err := r.ws.Values(ctx)
		if err != nil {
			return err
		}
		l, err := r.ensureHeader(ctx, values)
		if err != nil {
			return err
		}

		rowNumber, err := findRow(l, values, record.Date)
		if err != nil {
			return err
		}
		cells := l.encode(record)
		if rowNumber > 0 {
			span.SetAttributes(attribute.String("store.write", "update"))
			return r.ws.UpdateRow(ctx, rowNumber, cells)
		}
		span.SetAttributes(attribute.String("store.write", "append"))
		return r.ws.AppendRow(ctx, cells)
	})
	return endSpan(span, err)
}

// ensureHeader writes the expected header to an empty worksheet and
// otherwise validates the existing one.
func (r *dailyRecordRepository) ensureHeader(ctx context.Context, values [][]string) (*layout, error) {
	if len(values) == 0 || isBlank(values[0]) {
		header := ExpectedHeader()
		if err := r.ws.UpdateRow(ctx, 1, header); err != nil {
			return nil, err
		}
		log.Printf("[store] wrote header with %d columns to empty worksheet", len(header))
		return layoutFor(header)
	}
	return layoutFor(values[0])
}

func findRow(l *layout, values [][]string, date time.Time) (int, error) {
	for i := 1; i < len(values); i++ {
		row := values[i]
		if isBlank(row) {
			continue
		}
		d, err := domain.ParseDate(l.cell(row, colDate))
		if err != nil {
			return 0, fmt.Errorf("%w: row %d column %q: %v", domain.ErrMalformedRow, i+1, colDate, err)
		}
		if d.Equal(date) {
			return i + 1, nil
		}
	}
	return 0, nil
}

// decodeAll validates the header, then decodes every data row. Any malformed
// row aborts the whole read.
func decodeAll(values [][]string) ([]domain.DailyRecord, error) {
	if len(values) == 0 || isBlank(values[0]) {
		return nil, nil
	}
	l, err := layoutFor(values[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.DailyRecord, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if isBlank(values[i]) {
			continue
		}
		rec, err := l.decode(values[i], i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// retry runs fn until it succeeds, fails permanently or exhausts the retry
// budget. Only sheet.ErrUnavailable is retried. Exhausted retries surface as
// ErrStoreUnavailable; other backend errors as ErrStoreFailure.
func (r *dailyRecordRepository) retry(ctx context.Context, op string, fn func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.interval
	policy.MaxElapsedTime = 0

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, sheet.ErrUnavailable) {
			log.Printf("[store] %s attempt %d failed: %v", op, attempt, err)
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, r.maxRetries), ctx))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSchemaMismatch),
		errors.Is(err, domain.ErrMalformedRow),
		errors.Is(err, domain.ErrInvalidInput):
		return err
	case errors.Is(err, sheet.ErrUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s after %d attempt(s): %w", domain.ErrStoreUnavailable, op, attempt, err)
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreFailure, op, err)
	}
}

func endSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
