package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/pkg/problem"
	"github.com/go-chi/chi/v5"
)

// Mocks are defined in mocks_test.go

func newRecordRouter(svc *MockJournalService) http.Handler {
	h := NewRecordHandler(svc)
	r := chi.NewRouter()
	r.Post("/records", h.Save)
	r.Get("/records", h.List)
	r.Get("/records/today", h.Today)
	r.Get("/records/{date}", h.GetByDate)
	return r
}

func TestRecordHandler_Save(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockService    *MockJournalService
		wantStatusCode int
		wantProblem    string
		wantDetail     string
	}{
		{
			name:           "valid record",
			body:           `{"date":"2025-04-01","sleep_start":"23:45","sleep_end":"06:45","workload_scores":{"mental_demand":6},"symptom_scores":{"headache":2}}`,
			mockService:    &MockJournalService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "empty record defaults to today",
			body:           `{}`,
			mockService:    &MockJournalService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid JSON",
			body:           `{"date":`,
			mockService:    &MockJournalService{},
			wantStatusCode: http.StatusBadRequest,
			wantProblem:    "bad-request",
		},
		{
			name:           "malformed time",
			body:           `{"sleep_start":"7pm"}`,
			mockService:    &MockJournalService{},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantProblem:    "validation-error",
		},
		{
			name:           "unknown symptom",
			body:           `{"symptom_scores":{"back pain":2}}`,
			mockService:    &MockJournalService{},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantProblem:    "validation-error",
		},
		{
			name: "store unavailable",
			body: `{}`,
			mockService: &MockJournalService{
				saveFunc: func(ctx context.Context, req *domain.SaveDailyRecordRequest) (*domain.SaveDailyRecordResponse, error) {
					return nil, fmt.Errorf("%w: upsert after 4 attempt(s): dial tcp: i/o timeout", domain.ErrStoreUnavailable)
				},
			},
			wantStatusCode: http.StatusServiceUnavailable,
			wantProblem:    "service-unavailable",
			wantDetail:     "upsert after 4 attempt(s): dial tcp: i/o timeout",
		},
		{
			name: "permanent store failure",
			body: `{}`,
			mockService: &MockJournalService{
				saveFunc: func(ctx context.Context, req *domain.SaveDailyRecordRequest) (*domain.SaveDailyRecordResponse, error) {
					return nil, fmt.Errorf("%w: upsert 2025-04-01: googleapi: Error 403: permission denied", domain.ErrStoreFailure)
				},
			},
			wantStatusCode: http.StatusInternalServerError,
			wantProblem:    "store-error",
			wantDetail:     "Error 403: permission denied",
		},
		{
			name: "schema mismatch",
			body: `{}`,
			mockService: &MockJournalService{
				saveFunc: func(ctx context.Context, req *domain.SaveDailyRecordRequest) (*domain.SaveDailyRecordResponse, error) {
					return nil, fmt.Errorf("%w: missing column sleep_end", domain.ErrSchemaMismatch)
				},
			},
			wantStatusCode: http.StatusInternalServerError,
			wantProblem:    "store-error",
			wantDetail:     "missing column sleep_end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRecordRouter(tt.mockService)

			req := httptest.NewRequest(http.MethodPost, "/records", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}
			body := w.Body.String()
			if tt.wantProblem != "" {
				assertProblem(t, w, tt.wantProblem)
			}
			if tt.wantDetail != "" && !strings.Contains(body, tt.wantDetail) {
				t.Errorf("problem detail should carry %q, got %s", tt.wantDetail, body)
			}
		})
	}
}

func TestRecordHandler_SaveReturnsAdvice(t *testing.T) {
	svc := &MockJournalService{
		saveFunc: func(ctx context.Context, req *domain.SaveDailyRecordRequest) (*domain.SaveDailyRecordResponse, error) {
			hours := 7.0
			return &domain.SaveDailyRecordResponse{
				Record: domain.DailyRecordResponse{Date: "2025-04-01", SleepDurationHours: &hours},
				Advice: []string{"get a massage", "take a warm shower"},
			}, nil
		},
	}
	router := newRecordRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/records", bytes.NewBufferString(`{"sleep_start":"23:45","sleep_end":"06:45"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp domain.SaveDailyRecordResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Advice) != 2 || resp.Record.SleepDurationHours == nil || *resp.Record.SleepDurationHours != 7 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRecordHandler_List(t *testing.T) {
	var gotFilter domain.DailyRecordFilter
	svc := &MockJournalService{
		listFunc: func(ctx context.Context, filter domain.DailyRecordFilter) (*domain.DailyRecordListResponse, error) {
			gotFilter = filter
			return &domain.DailyRecordListResponse{Data: []domain.DailyRecordResponse{}}, nil
		},
	}
	router := newRecordRouter(svc)

	tests := []struct {
		name           string
		query          string
		wantStatusCode int
	}{
		{name: "no filters", query: "", wantStatusCode: http.StatusOK},
		{name: "date range and limit", query: "?from=2025-03-01&to=2025-03-31&limit=10&cursor=abc", wantStatusCode: http.StatusOK},
		{name: "bad from", query: "?from=2025-03-01T00:00:00Z", wantStatusCode: http.StatusUnprocessableEntity},
		{name: "bad limit", query: "?limit=0", wantStatusCode: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/records"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}
		})
	}

	if gotFilter.Limit != 10 || gotFilter.Cursor != "abc" || gotFilter.From == nil || gotFilter.To == nil {
		t.Errorf("filter not passed through: %+v", gotFilter)
	}
}

func TestRecordHandler_ListInvalidCursor(t *testing.T) {
	svc := &MockJournalService{
		listFunc: func(ctx context.Context, filter domain.DailyRecordFilter) (*domain.DailyRecordListResponse, error) {
			return nil, fmt.Errorf("%w: invalid cursor", domain.ErrInvalidInput)
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/records?cursor=zzz", nil)
	w := httptest.NewRecorder()
	newRecordRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestRecordHandler_Today(t *testing.T) {
	router := newRecordRouter(&MockJournalService{})
	req := httptest.NewRequest(http.MethodGet, "/records/today", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before anything is saved, got %d", w.Code)
	}

	svc := &MockJournalService{
		todayFunc: func(ctx context.Context) (*domain.DailyRecord, error) {
			return &domain.DailyRecord{Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), HowItFelt: "rested"}, nil
		},
	}
	w = httptest.NewRecorder()
	newRecordRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/records/today", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp domain.DailyRecordResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Date != "2025-04-01" || resp.HowItFelt != "rested" || resp.SleepDurationHours != nil {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRecordHandler_GetByDate(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		wantStatusCode int
	}{
		{name: "found", path: "/records/2025-04-01", wantStatusCode: http.StatusOK},
		{name: "bad date", path: "/records/april-first", wantStatusCode: http.StatusBadRequest},
	}
	router := newRecordRouter(&MockJournalService{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d", tt.wantStatusCode, w.Code)
			}
		})
	}
}

func assertProblem(t *testing.T, w *httptest.ResponseRecorder, wantType string) {
	t.Helper()
	if got := w.Header().Get("Content-Type"); got != problem.ContentType {
		t.Errorf("content type = %q, want %q", got, problem.ContentType)
	}
	var p problem.Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	if p.Type != problem.BaseURI+"/"+wantType {
		t.Errorf("problem type = %q, want %q", p.Type, wantType)
	}
}
