package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/blaisecz/care-log/internal/api/validation"
	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/service"
	"github.com/blaisecz/care-log/pkg/problem"
	"go.opentelemetry.io/otel/trace"
)

// ReportHandler handles the reporting endpoints.
type ReportHandler struct {
	reports  service.ReportService
	insights service.InsightsService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports service.ReportService, insights service.InsightsService) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		insights: insights,
	}
}

// Trends handles GET /v1/reports/trends
// @Summary Get trend report
// @Description Sleep and workload series, their correlation, fatigue category frequency, chronotype and reflections over a date window. Defaults to the 30 days ending at the newest record.
// @Tags reports
// @Produce json
// @Param from query string false "Window start" format(date) example(2025-03-02)
// @Param to query string false "Window end" format(date) example(2025-04-01)
// @Success 200 {object} domain.ReportResponse "Report"
// @Failure 400 {object} problem.Problem "Invalid window"
// @Failure 500 {object} problem.Problem "Record store data error"
// @Failure 503 {object} problem.Problem "Record store unavailable"
// @Router /reports/trends [get]
func (h *ReportHandler) Trends(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseReportFilter(w, r)
	if !ok {
		return
	}

	report, err := h.reports.Compute(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to compute report")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Insights handles GET /v1/reports/insights
// @Summary Get LLM reflection
// @Description Send the trend report to the LLM for a short, non-medical reflection.
// @Tags reports
// @Produce json
// @Param from query string false "Window start" format(date) example(2025-03-02)
// @Param to query string false "Window end" format(date) example(2025-04-01)
// @Success 200 {object} domain.InsightsResponse "Report with reflection"
// @Failure 400 {object} problem.Problem "Invalid window"
// @Failure 502 {object} problem.Problem "LLM failure"
// @Failure 503 {object} problem.Problem "LLM not configured or record store unavailable"
// @Router /reports/insights [get]
func (h *ReportHandler) Insights(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseReportFilter(w, r)
	if !ok {
		return
	}

	result, err := h.insights.Generate(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to generate insights")
		return
	}

	// Attach OTEL trace ID (if present) to response for feedback linking
	span := trace.SpanFromContext(r.Context())
	if span.SpanContext().IsValid() {
		result.TraceID = span.SpanContext().TraceID().String()
	}

	writeJSON(w, http.StatusOK, result)
}

// Feedback handles POST /v1/reports/insights/feedback
// @Summary Submit feedback on a reflection
// @Tags reports
// @Accept json
// @Param body body domain.FeedbackRequest true "Feedback request"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 422 {object} problem.Problem "Invalid fields"
// @Router /reports/insights/feedback [post]
func (h *ReportHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req domain.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	if err := h.insights.Feedback(r.Context(), &req); err != nil {
		writeError(w, err, "Failed to submit feedback")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseReportFilter(w http.ResponseWriter, r *http.Request) (domain.ReportFilter, bool) {
	var filter domain.ReportFilter
	var fieldErrors []problem.FieldError

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{"from", &filter.From},
		{"to", &filter.To},
	} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		date, err := domain.ParseDate(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   p.name,
				Message: "must be a date in YYYY-MM-DD format",
			})
			continue
		}
		*p.dst = &date
	}

	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return filter, false
	}
	return filter, true
}
