package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/llm"
	"github.com/blaisecz/care-log/pkg/problem"
)

// writeError maps service errors onto problem responses. fallback is the
// detail for errors without a more specific mapping.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Write(w)
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("Record not found").Write(w)
	case errors.Is(err, domain.ErrSchemaMismatch), errors.Is(err, domain.ErrMalformedRow), errors.Is(err, domain.ErrStoreFailure):
		// The raw cause tells the operator which column or row to fix.
		problem.StoreError(err.Error()).Write(w)
	case errors.Is(err, domain.ErrStoreUnavailable):
		problem.ServiceUnavailable(err.Error()).Write(w)
	case errors.Is(err, llm.ErrOpenAIUnavailable):
		problem.ServiceUnavailable("OpenAI service is not configured").Write(w)
	case errors.Is(err, llm.ErrOpenAIRequest), errors.Is(err, llm.ErrOpenAIResponse):
		problem.New(http.StatusBadGateway, "llm-error", "LLM Error", "Failed to generate reflection from LLM").Write(w)
	default:
		log.Printf("%s: %v", fallback, err)
		problem.InternalError(fallback).Write(w)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
