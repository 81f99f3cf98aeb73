package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/blaisecz/care-log/docs"
	"github.com/blaisecz/care-log/internal/api/handler"
	"github.com/blaisecz/care-log/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	recordHandler *handler.RecordHandler
	adviceHandler *handler.AdviceHandler
	reportHandler *handler.ReportHandler
}

func NewRouter(recordHandler *handler.RecordHandler, adviceHandler *handler.AdviceHandler, reportHandler *handler.ReportHandler) *Router {
	return &Router{
		recordHandler: recordHandler,
		adviceHandler: adviceHandler,
		reportHandler: reportHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimw.Logger)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Tracing)

		r.Route("/records", func(r chi.Router) {
			r.Post("/", rt.recordHandler.Save)
			r.Get("/", rt.recordHandler.List)
			r.Get("/today", rt.recordHandler.Today)
			r.Get("/{date}", rt.recordHandler.GetByDate)
		})

		r.Post("/advice", rt.adviceHandler.Preview)
		r.Get("/catalog", rt.adviceHandler.Catalog)
		r.Get("/guide/{dimension}", rt.adviceHandler.Guide)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/trends", rt.reportHandler.Trends)
			r.Get("/insights", rt.reportHandler.Insights)
			r.Post("/insights/feedback", rt.reportHandler.Feedback)
		})
	})

	return r
}
