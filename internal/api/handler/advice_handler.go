package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/blaisecz/care-log/internal/advice"
	"github.com/blaisecz/care-log/internal/api/validation"
	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/guide"
	"github.com/blaisecz/care-log/internal/service"
	"github.com/blaisecz/care-log/pkg/problem"
	"github.com/go-chi/chi/v5"
)

// AdviceHandler serves the advice preview and the reference data behind the
// entry form: the advice catalog and the per-scale workload guide.
type AdviceHandler struct {
	journal service.JournalService
	catalog *advice.Catalog
	guide   *guide.Guide
}

func NewAdviceHandler(journal service.JournalService, catalog *advice.Catalog, g *guide.Guide) *AdviceHandler {
	return &AdviceHandler{
		journal: journal,
		catalog: catalog,
		guide:   g,
	}
}

// CatalogResponse lists every catalog entry.
// @Description Advice catalog keyed by symptom and severity.
type CatalogResponse struct {
	Version    string            `json:"version" example:"2025.1"`
	Symptoms   []domain.Symptom  `json:"symptoms"`
	Categories []advice.Category `json:"categories"`
	Entries    []advice.Entry    `json:"entries"`
}

// GuideResponse is the guidance for one workload scale.
// @Description Score guidance for a NASA-TLX dimension.
type GuideResponse struct {
	Dimension domain.WorkloadDimension `json:"dimension" example:"mental_demand"`
	Question  string                   `json:"question"`
	Rows      []guide.Row              `json:"rows"`
	// Guidance for the requested score, when one was given
	Description string `json:"description,omitempty"`
}

// Preview handles POST /v1/advice
// @Summary Preview advice
// @Description Draw self-care advice for the given symptoms and workload without saving anything.
// @Tags advice
// @Accept json
// @Produce json
// @Param request body domain.AdviceRequest true "Symptoms and workload"
// @Success 200 {object} domain.AdviceResponse "Advice"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 422 {object} problem.Problem "Invalid fields"
// @Router /advice [post]
func (h *AdviceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req domain.AdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	writeJSON(w, http.StatusOK, h.journal.Advise(&req))
}

// Catalog handles GET /v1/catalog
// @Summary Get the advice catalog
// @Tags advice
// @Produce json
// @Success 200 {object} CatalogResponse "Catalog"
// @Router /catalog [get]
func (h *AdviceHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{
		Version:    h.catalog.Version(),
		Symptoms:   h.catalog.Symptoms(),
		Categories: advice.Categories(),
		Entries:    h.catalog.Entries(),
	})
}

// Guide handles GET /v1/guide/{dimension}
// @Summary Get workload guidance
// @Description Score guidance for one NASA-TLX dimension. Pass score to also get the guidance that applies to it.
// @Tags advice
// @Produce json
// @Param dimension path string true "Workload dimension" Enums(mental_demand, physical_demand, temporal_demand, effort, performance, frustration)
// @Param score query integer false "Score to describe (0-10)" minimum(0) maximum(10)
// @Success 200 {object} GuideResponse "Guidance rows"
// @Failure 400 {object} problem.Problem "Invalid score"
// @Failure 404 {object} problem.Problem "Unknown dimension"
// @Router /guide/{dimension} [get]
func (h *AdviceHandler) Guide(w http.ResponseWriter, r *http.Request) {
	dim := domain.WorkloadDimension(chi.URLParam(r, "dimension"))
	if !domain.IsKnownWorkloadDimension(dim) {
		problem.NotFound("Unknown workload dimension").Write(w)
		return
	}

	resp := GuideResponse{
		Dimension: dim,
		Question:  dim.Question(),
		Rows:      h.guide.Rows(dim),
	}

	if scoreStr := r.URL.Query().Get("score"); scoreStr != "" {
		score, err := strconv.Atoi(scoreStr)
		if err != nil || score < domain.MinWorkloadScore || score > domain.MaxWorkloadScore {
			problem.BadRequest("score must be an integer between 0 and 10").Write(w)
			return
		}
		resp.Description, _ = h.guide.Describe(dim, score)
	}

	writeJSON(w, http.StatusOK, resp)
}
