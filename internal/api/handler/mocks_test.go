package handler

import (
	"context"
	"time"

	"github.com/blaisecz/care-log/internal/domain"
)

// MockJournalService is a mock implementation of JournalService
type MockJournalService struct {
	saveFunc   func(ctx context.Context, req *domain.SaveDailyRecordRequest) (*domain.SaveDailyRecordResponse, error)
	getFunc    func(ctx context.Context, date time.Time) (*domain.DailyRecord, error)
	todayFunc  func(ctx context.Context) (*domain.DailyRecord, error)
	listFunc   func(ctx context.Context, filter domain.DailyRecordFilter) (*domain.DailyRecordListResponse, error)
	adviseFunc func(req *domain.AdviceRequest) *domain.AdviceResponse
}

func (m *MockJournalService) Save(ctx context.Context, req *domain.SaveDailyRecordRequest) (*domain.SaveDailyRecordResponse, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, req)
	}
	return &domain.SaveDailyRecordResponse{
		Record: domain.DailyRecordResponse{Date: req.Date},
		Advice: []string{"take a short walk"},
	}, nil
}

func (m *MockJournalService) Get(ctx context.Context, date time.Time) (*domain.DailyRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, date)
	}
	return &domain.DailyRecord{Date: date}, nil
}

func (m *MockJournalService) Today(ctx context.Context) (*domain.DailyRecord, error) {
	if m.todayFunc != nil {
		return m.todayFunc(ctx)
	}
	return nil, domain.ErrNotFound
}

func (m *MockJournalService) List(ctx context.Context, filter domain.DailyRecordFilter) (*domain.DailyRecordListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return &domain.DailyRecordListResponse{
		Data:       []domain.DailyRecordResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func (m *MockJournalService) Advise(req *domain.AdviceRequest) *domain.AdviceResponse {
	if m.adviseFunc != nil {
		return m.adviseFunc(req)
	}
	return &domain.AdviceResponse{Advice: []string{"no advice available"}, CatalogVersion: "test"}
}

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	computeFunc func(ctx context.Context, filter domain.ReportFilter) (*domain.ReportResponse, error)
}

func (m *MockReportService) Compute(ctx context.Context, filter domain.ReportFilter) (*domain.ReportResponse, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, filter)
	}
	return &domain.ReportResponse{}, nil
}

// MockInsightsService is a mock implementation of InsightsService
type MockInsightsService struct {
	generateFunc func(ctx context.Context, filter domain.ReportFilter) (*domain.InsightsResponse, error)
	feedbackFunc func(ctx context.Context, req *domain.FeedbackRequest) error
}

func (m *MockInsightsService) Generate(ctx context.Context, filter domain.ReportFilter) (*domain.InsightsResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, filter)
	}
	return &domain.InsightsResponse{
		Insights: domain.LLMReflectionOutput{
			Summary:      "A steady month.",
			Observations: []string{"Shorter nights after busy days"},
			Guidance:     []string{"Keep a wind-down routine"},
		},
	}, nil
}

func (m *MockInsightsService) Feedback(ctx context.Context, req *domain.FeedbackRequest) error {
	if m.feedbackFunc != nil {
		return m.feedbackFunc(ctx, req)
	}
	return nil
}
