package service

import (
	"context"
	"fmt"
	"log"

	"github.com/blaisecz/care-log/internal/domain"
	"github.com/blaisecz/care-log/internal/langfuse"
	"github.com/blaisecz/care-log/internal/llm"
	"go.opentelemetry.io/otel"
)

// PromptLoader returns the system prompt for the reflection.
type PromptLoader func(ctx context.Context) (string, error)

// InsightsService turns the trend report into an LLM reflection and collects
// feedback on it.
type InsightsService interface {
	Generate(ctx context.Context, filter domain.ReportFilter) (*domain.InsightsResponse, error)
	Feedback(ctx context.Context, req *domain.FeedbackRequest) error
}

type insightsService struct {
	reports   ReportService
	llmClient llm.ReflectionLLM
	prompts   PromptLoader
	langfuse  langfuse.Client
}

// NewInsightsService creates a new InsightsService. A nil prompts loader uses
// the built-in reflection prompt.
func NewInsightsService(
	reports ReportService,
	llmClient llm.ReflectionLLM,
	prompts PromptLoader,
	langfuseClient langfuse.Client,
) InsightsService {
	return &insightsService{
		reports:   reports,
		llmClient: llmClient,
		prompts:   prompts,
		langfuse:  langfuseClient,
	}
}

func (s *insightsService) Generate(ctx context.Context, filter domain.ReportFilter) (*domain.InsightsResponse, error) {
	ctx, span := otel.Tracer("care-log/insights").Start(ctx, "InsightsService.Generate")
	defer span.End()

	if s.llmClient == nil {
		return nil, llm.ErrOpenAIUnavailable
	}

	report, err := s.reports.Compute(ctx, filter)
	if err != nil {
		return nil, err
	}

	output, err := s.llmClient.Reflect(ctx, s.systemPrompt(ctx), report)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &domain.InsightsResponse{
		Report:   *report,
		Insights: *output,
	}, nil
}

func (s *insightsService) systemPrompt(ctx context.Context) string {
	if s.prompts == nil {
		return llm.DefaultReflectionPrompt
	}
	prompt, err := s.prompts(ctx)
	if err != nil || prompt == "" {
		log.Printf("[langfuse] using built-in reflection prompt: %v", err)
		return llm.DefaultReflectionPrompt
	}
	return prompt
}

// Feedback records a user rating against the trace of an earlier reflection.
// It is accepted, and dropped, when Langfuse is not configured.
func (s *insightsService) Feedback(ctx context.Context, req *domain.FeedbackRequest) error {
	if req.TraceID == "" {
		return fmt.Errorf("%w: trace_id is required", domain.ErrInvalidInput)
	}
	if s.langfuse == nil || !s.langfuse.IsEnabled() {
		return nil
	}
	return s.langfuse.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    "user_rating",
		Value:   float64(req.Score),
		Comment: req.Comment,
	})
}
