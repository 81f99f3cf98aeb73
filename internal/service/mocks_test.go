package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/blaisecz/care-log/internal/advice"
	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/langfuse"
)

// MockDailyRecordRepository is a mock implementation of DailyRecordRepository
type MockDailyRecordRepository struct {
	records map[string]domain.DailyRecord
	upserts int
	err     error
}

func NewMockDailyRecordRepository(records ...domain.DailyRecord) *MockDailyRecordRepository {
	m := &MockDailyRecordRepository{records: make(map[string]domain.DailyRecord)}
	for _, rec := range records {
		m.records[rec.DateKey()] = rec
	}
	return m
}

func (m *MockDailyRecordRepository) EnsureSchema(ctx context.Context) error {
	return m.err
}

func (m *MockDailyRecordRepository) FindByDate(ctx context.Context, date time.Time) (*domain.DailyRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[date.Format(domain.DateLayout)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (m *MockDailyRecordRepository) Upsert(ctx context.Context, record *domain.DailyRecord) error {
	if m.err != nil {
		return m.err
	}
	m.upserts++
	m.records[record.DateKey()] = *record
	return nil
}

func (m *MockDailyRecordRepository) LoadAll(ctx context.Context) ([]domain.DailyRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.DailyRecord
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

// MockLangfuseClient records traces and scores in memory.
type MockLangfuseClient struct {
	mu      sync.Mutex
	enabled bool
	traces  []langfuse.TraceInput
	scores  []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool { return m.enabled }

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traces = append(m.traces, in)
	return "trace-1", nil
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, in)
	return nil
}

func (m *MockLangfuseClient) Flush(ctx context.Context) error { return nil }

// MockReflectionLLM returns a canned reflection and remembers its inputs.
type MockReflectionLLM struct {
	output       *domain.LLMReflectionOutput
	err          error
	systemPrompt string
	report       *domain.ReportResponse
}

func (m *MockReflectionLLM) Reflect(ctx context.Context, systemPrompt string, report *domain.ReportResponse) (*domain.LLMReflectionOutput, error) {
	m.systemPrompt = systemPrompt
	m.report = report
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

// MockReportService returns a fixed report.
type MockReportService struct {
	report *domain.ReportResponse
	err    error
	filter domain.ReportFilter
}

func (m *MockReportService) Compute(ctx context.Context, filter domain.ReportFilter) (*domain.ReportResponse, error) {
	m.filter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// firstN always draws the first pool entries, in rank order.
type firstN struct{}

func (firstN) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func newEngine(t *testing.T) *advice.Engine {
	t.Helper()
	catalog, err := advice.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}
	return advice.NewEngine(catalog)
}

// Helper functions
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

// nightRecord builds a record with a sleep window and a uniform workload score.
func nightRecord(t *testing.T, date, start, end string, workload int) domain.DailyRecord {
	t.Helper()
	rec := domain.DailyRecord{
		Date:           mustDate(t, date),
		WorkloadScores: map[domain.WorkloadDimension]int{},
		SymptomScores:  map[domain.Symptom]int{},
	}
	if start != "" {
		rec.SleepStart = mustTime(t, start)
	}
	if end != "" {
		rec.SleepEnd = mustTime(t, end)
	}
	for _, dim := range domain.WorkloadDimensions() {
		rec.WorkloadScores[dim] = workload
	}
	rec.RecomputeSleepDuration()
	return rec
}

func floatPtr(f float64) *float64 {
	return &f
}
