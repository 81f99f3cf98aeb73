package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/blaisecz/care-log/internal/advice"
	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/langfuse"
	"github.com/blaisecz/care-log/internal/repository"
	"github.com/blaisecz/care-log/pkg/pagination"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type JournalService interface {
	// Save writes the day's record, replacing any earlier save for the same date,
	// and returns it together with the advice shown for it.
	Save(ctx context.Context, req *domain.SaveDailyRecordRequest) (*domain.SaveDailyRecordResponse, error)
	Get(ctx context.Context, date time.Time) (*domain.DailyRecord, error)
	// Today returns the record already saved for the current day, if any.
	Today(ctx context.Context) (*domain.DailyRecord, error)
	List(ctx context.Context, filter domain.DailyRecordFilter) (*domain.DailyRecordListResponse, error)
	Advise(req *domain.AdviceRequest) *domain.AdviceResponse
}

// JournalOption customizes a JournalService.
type JournalOption func(*journalService)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) JournalOption {
	return func(s *journalService) { s.now = now }
}

// WithAdviceSource fixes the random source used to draw advice.
func WithAdviceSource(src advice.Source) JournalOption {
	return func(s *journalService) { s.src = src }
}

type journalService struct {
	repo     repository.DailyRecordRepository
	engine   *advice.Engine
	langfuse langfuse.Client
	now      func() time.Time
	src      advice.Source
}

func NewJournalService(repo repository.DailyRecordRepository, engine *advice.Engine, lf langfuse.Client, opts ...JournalOption) JournalService {
	s := &journalService{
		repo:     repo,
		engine:   engine,
		langfuse: lf,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *journalService) Save(ctx context.Context, req *domain.SaveDailyRecordRequest) (*domain.SaveDailyRecordResponse, error) {
	ctx, span := otel.Tracer("care-log/journal").Start(ctx, "JournalService.Save")
	defer span.End()

	record, err := s.buildRecord(req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("record.date", record.DateKey()))

	shown := s.engine.Generate(record.SymptomScores, record.WorkloadScores, s.src)

	if err := s.repo.Upsert(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp := &domain.SaveDailyRecordResponse{
		Record: record.ToResponse(),
		Advice: shown,
	}
	s.traceSave(ctx, resp)
	return resp, nil
}

// buildRecord turns a request into a record keyed by the requested date or today.
func (s *journalService) buildRecord(req *domain.SaveDailyRecordRequest) (*domain.DailyRecord, error) {
	record := &domain.DailyRecord{
		Date:           domain.DateOf(s.now()),
		WorkloadScores: copyScores(req.WorkloadScores),
		SymptomScores:  copyScores(req.SymptomScores),
		WhatHappened:   req.WhatHappened,
		HowItFelt:      req.HowItFelt,
		WhatWasDone:    req.WhatWasDone,
	}

	if req.Date != "" {
		date, err := domain.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		record.Date = date
	}

	var err error
	if record.SleepStart, err = parseOptionalTime(req.SleepStart); err != nil {
		return nil, err
	}
	if record.SleepEnd, err = parseOptionalTime(req.SleepEnd); err != nil {
		return nil, err
	}
	record.RecomputeSleepDuration()

	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *journalService) traceSave(ctx context.Context, resp *domain.SaveDailyRecordResponse) {
	if s.langfuse == nil || !s.langfuse.IsEnabled() {
		return
	}
	_, err := s.langfuse.CreateTrace(ctx, langfuse.TraceInput{
		Name:   "daily-record",
		Input:  resp.Record,
		Output: resp.Advice,
		Tags:   []string{"journal", "advice"},
		Metadata: map[string]any{
			"date":            resp.Record.Date,
			"catalog_version": s.engine.Catalog().Version(),
		},
	})
	if err != nil {
		log.Printf("[langfuse] failed to record save trace: %v", err)
	}
}

func (s *journalService) Get(ctx context.Context, date time.Time) (*domain.DailyRecord, error) {
	return s.repo.FindByDate(ctx, domain.DateOf(date))
}

func (s *journalService) Today(ctx context.Context) (*domain.DailyRecord, error) {
	return s.repo.FindByDate(ctx, domain.DateOf(s.now()))
}

func (s *journalService) List(ctx context.Context, filter domain.DailyRecordFilter) (*domain.DailyRecordListResponse, error) {
	cursor, err := pagination.DecodeCursor(filter.Cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	var before *time.Time
	if cursor != nil {
		t, err := cursor.Time()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		before = &t
	}

	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []domain.DailyRecord
	for _, rec := range records {
		if filter.From != nil && rec.Date.Before(domain.DateOf(*filter.From)) {
			continue
		}
		if filter.To != nil && rec.Date.After(domain.DateOf(*filter.To)) {
			continue
		}
		if before != nil && !rec.Date.Before(*before) {
			continue
		}
		matched = append(matched, rec)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(matched) > limit
	if hasMore {
		matched = matched[:limit]
	}

	response := &domain.DailyRecordListResponse{
		Data: make([]domain.DailyRecordResponse, len(matched)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}
	for i := range matched {
		response.Data[i] = matched[i].ToResponse()
	}

	if hasMore && len(matched) > 0 {
		response.Pagination.NextCursor = pagination.NewCursor(matched[len(matched)-1].Date).Encode()
	}

	return response, nil
}

func (s *journalService) Advise(req *domain.AdviceRequest) *domain.AdviceResponse {
	return &domain.AdviceResponse{
		Advice:         s.engine.Generate(req.SymptomScores, req.WorkloadScores, s.src),
		CatalogVersion: s.engine.Catalog().Version(),
	}
}

func parseOptionalTime(s string) (*domain.TimeOfDay, error) {
	if s == "" {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func copyScores[K comparable](in map[K]int) map[K]int {
	out := make(map[K]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
