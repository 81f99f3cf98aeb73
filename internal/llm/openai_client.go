package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blaisecz/care-log/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

// DefaultReflectionPrompt is used when no managed prompt is available.
const DefaultReflectionPrompt = `You are a non-medical self-care journaling assistant.

You receive a report built from one person's daily journal: sleep hours, NASA-TLX workload scores (0-10 per dimension and their daily total), how often each fatigue category appeared in their symptoms, a sleep chronotype, and their own short reflections. Base every conclusion only on this data.

Your goals:
- Summarize the period in plain, kind language.
- Point out links between workload and sleep where the numbers show them.
- Note which fatigue categories came up most.
- Suggest small, practical self-care habits.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- If data is sparse or mixed, say so.
- Be concise and concrete.

Respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences about the period.",
  "observations": ["3-6 observations about sleep, workload and symptoms."],
  "guidance": ["3-5 concrete, non-medical self-care suggestions."]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is the journal report as JSON.

- "sleep" and "sleep_stats" are nightly sleep hours.
- "workload" holds daily NASA-TLX scores; "total" is their sum.
- "correlation" pairs sleep hours with the same day's workload total; "pearson" may be null.
- "categories" counts fatigue categories implied by recorded symptoms.
- "reflections" are the person's own notes.

JSON:

%s

Respond in the required JSON format.`

// ReflectionLLM turns a journal report into a short reflection.
type ReflectionLLM interface {
	Reflect(ctx context.Context, systemPrompt string, report *domain.ReportResponse) (*domain.LLMReflectionOutput, error)
}

// OpenAIClient implements ReflectionLLM using the OpenAI API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) *OpenAIClient {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (c *OpenAIClient) Reflect(ctx context.Context, systemPrompt string, report *domain.ReportResponse) (*domain.LLMReflectionOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultReflectionPrompt
	}

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize report: %v", ErrOpenAIRequest, err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptTemplate, string(reportJSON))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	return parseReflection(resp.Choices[0].Message.Content)
}

// parseReflection decodes the model's JSON answer, tolerating a fenced code block.
func parseReflection(content string) (*domain.LLMReflectionOutput, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var output domain.LLMReflectionOutput
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if output.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrOpenAIResponse)
	}
	return &output, nil
}
