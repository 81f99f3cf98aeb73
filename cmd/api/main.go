// Care Log API
//
// REST API for a daily self-care journal.
//
//	@title			Care Log API
//	@version		1.0
//	@description	Daily self-care journal: sleep, NASA-TLX workload, symptoms, advice and trend reports.
//
//	@BasePath	/v1
//
//	@tag.name			records
//	@tag.description	Daily journal records
//
//	@tag.name			advice
//	@tag.description	Self-care advice and reference data
//
//	@tag.name			reports
//	@tag.description	Trend reports and reflections
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/care-log/internal/advice"
	"github.com/blaisecz/care-log/internal/api"
	"github.com/blaisecz/care-log/internal/api/handler"
	"github.com/blaisecz/care-log/internal/config"
	"github.com/blaisecz/care-log/internal/guide"
	"github.com/blaisecz/care-log/internal/langfuse"
	"github.com/blaisecz/care-log/internal/llm"
	"github.com/blaisecz/care-log/internal/repository"
	"github.com/blaisecz/care-log/internal/seed"
	"github.com/blaisecz/care-log/internal/service"
	"github.com/blaisecz/care-log/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "care-log-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Open the record store
	ws, err := config.NewWorksheet(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	recordRepo := repository.NewDailyRecordRepository(ws, cfg.StoreMaxRetries)
	if err := recordRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to verify record store schema: %v", err)
	}
	log.Println("Record store schema verified")

	if cfg.Seed {
		log.Println("Seeding journal with sample data (SEED=true)...")
		if _, err := seed.Run(ctx, recordRepo, seed.DefaultDays, time.Now(), nil); err != nil {
			log.Fatalf("Failed to seed journal: %v", err)
		}
	}

	// Load reference data
	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load advice catalog: %v", err)
	}
	workloadGuide, err := loadGuide(cfg.GuidePath)
	if err != nil {
		log.Fatalf("Failed to load workload guide: %v", err)
	}

	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	// Initialize OpenAI client (may be nil if not configured)
	var reflectionLLM llm.ReflectionLLM
	if openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIReflectionModel); openaiClient != nil {
		reflectionLLM = openaiClient
	} else {
		log.Println("Warning: OpenAI API key not configured, insights endpoint will be unavailable")
	}

	prompts := func(ctx context.Context) (string, error) {
		return langfuse.LoadPrompt(ctx, langfuse.PromptConfig{
			BaseURL:   cfg.LangfuseBaseURL,
			PublicKey: cfg.LangfusePublicKey,
			SecretKey: cfg.LangfuseSecretKey,
			Name:      cfg.LangfusePromptName,
			Label:     cfg.LangfusePromptLabel,
			CachePath: cfg.LangfusePromptCache,
			Fallback:  llm.DefaultReflectionPrompt,
		})
	}

	// Initialize services
	journalService := service.NewJournalService(recordRepo, advice.NewEngine(catalog), langfuseClient)
	reportService := service.NewReportService(recordRepo, catalog)
	insightsService := service.NewInsightsService(reportService, reflectionLLM, prompts, langfuseClient)

	// Initialize handlers
	recordHandler := handler.NewRecordHandler(journalService)
	adviceHandler := handler.NewAdviceHandler(journalService, catalog, workloadGuide)
	reportHandler := handler.NewReportHandler(reportService, insightsService)

	// Setup router
	router := api.NewRouter(recordHandler, adviceHandler, reportHandler)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	// Start server
	log.Printf("Starting server on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := langfuseClient.Flush(flushCtx); err != nil {
		log.Printf("[langfuse] flush on shutdown: %v", err)
	}
	if err := shutdownTracer(flushCtx); err != nil {
		log.Printf("[otel] shutdown: %v", err)
	}
}

func loadCatalog(path string) (*advice.Catalog, error) {
	if path == "" {
		return advice.DefaultCatalog()
	}
	return advice.LoadCatalogFile(path)
}

func loadGuide(path string) (*guide.Guide, error) {
	if path == "" {
		return guide.Default()
	}
	return guide.LoadFile(path)
}
