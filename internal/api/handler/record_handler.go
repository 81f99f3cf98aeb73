package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/blaisecz/care-log/internal/api/validation"
	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/service"
	"github.com/blaisecz/care-log/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type RecordHandler struct {
	service service.JournalService
}

func NewRecordHandler(service service.JournalService) *RecordHandler {
	return &RecordHandler{service: service}
}

// Save handles POST /v1/records
// @Summary Save a day's record
// @Description Save sleep times, NASA-TLX workload, symptoms and reflections for one day (today unless date is given). Saving the same date again replaces the earlier entry. Returns the stored record and the self-care advice drawn for it.
// @Tags records
// @Accept json
// @Produce json
// @Param request body domain.SaveDailyRecordRequest true "Daily record"
// @Success 200 {object} domain.SaveDailyRecordResponse "Record saved"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 422 {object} problem.Problem "Invalid fields"
// @Failure 500 {object} problem.Problem "Record store data error"
// @Failure 503 {object} problem.Problem "Record store unavailable"
// @Router /records [post]
func (h *RecordHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveDailyRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	resp, err := h.service.Save(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to save record")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /v1/records
// @Summary List history
// @Description Fetch paginated journal history, newest first, optionally bounded by date.
// @Tags records
// @Produce json
// @Param from query string false "First date to include" format(date) example(2025-03-01)
// @Param to query string false "Last date to include" format(date) example(2025-03-31)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.DailyRecordListResponse "Records with pagination"
// @Failure 400 {object} problem.Problem "Invalid cursor"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 503 {object} problem.Problem "Record store unavailable"
// @Router /records [get]
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to list records")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Today handles GET /v1/records/today
// @Summary Get today's record
// @Description Fetch the record already saved today so the entry form can resume editing it.
// @Tags records
// @Produce json
// @Success 200 {object} domain.DailyRecordResponse "Today's record"
// @Failure 404 {object} problem.Problem "Nothing saved today"
// @Failure 503 {object} problem.Problem "Record store unavailable"
// @Router /records/today [get]
func (h *RecordHandler) Today(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Today(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load today's record")
		return
	}
	writeJSON(w, http.StatusOK, record.ToResponse())
}

// GetByDate handles GET /v1/records/{date}
// @Summary Get a record by date
// @Tags records
// @Produce json
// @Param date path string true "Record date" format(date) example(2025-04-01)
// @Success 200 {object} domain.DailyRecordResponse "Record"
// @Failure 400 {object} problem.Problem "Invalid date"
// @Failure 404 {object} problem.Problem "Record not found"
// @Failure 503 {object} problem.Problem "Record store unavailable"
// @Router /records/{date} [get]
func (h *RecordHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		problem.BadRequest("Invalid date, expected YYYY-MM-DD").Write(w)
		return
	}

	record, err := h.service.Get(r.Context(), date)
	if err != nil {
		writeError(w, err, "Failed to load record")
		return
	}
	writeJSON(w, http.StatusOK, record.ToResponse())
}

func parseListFilter(r *http.Request) (domain.DailyRecordFilter, []problem.FieldError) {
	var filter domain.DailyRecordFilter
	var fieldErrors []problem.FieldError

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := domain.ParseDate(fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "from",
				Message: "must be a date in YYYY-MM-DD format",
			})
		} else {
			filter.From = &from
		}
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := domain.ParseDate(toStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "to",
				Message: "must be a date in YYYY-MM-DD format",
			})
		} else {
			filter.To = &to
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}
	return filter, nil
}
