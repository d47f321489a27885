package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"guidebot/internal/models"
)

const systemPrompt = `You are a helpful campus guide assistant. Answer questions about
admissions, courses, hostels, placements, scholarships, and campus facilities.
Keep answers short, factual, and friendly. If you are not sure, say so rather
than guessing.`

// tokenEncoding is used to estimate token usage when the backend does not
// report it.
const tokenEncoding = "cl100k_base"

// Service produces generative completions through an OpenAI-compatible
// endpoint (a local ollama instance by default).
type Service struct {
	llm     llms.LLM
	model   string
	timeout time.Duration
	encoder *tiktoken.Tiktoken
}

// New builds a generation service against the given endpoint. Token usage
// estimation degrades to zero if the encoding is unavailable.
func New(baseURL, token, model string, timeout time.Duration) (*Service, error) {
	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}

	encoder, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		encoder = nil
	}

	return &Service{llm: llm, model: model, timeout: timeout, encoder: encoder}, nil
}

// Generate asks the model to answer query. Any downstream failure (timeout,
// upstream error, quota) is returned as an error; callers are expected to
// treat that as "no result" rather than a fatal condition.
func (s *Service) Generate(ctx context.Context, query string) (*models.GenerationResult, error) {
	prompt := fmt.Sprintf("%s\n\nQuestion: %s\n\nAnswer:", systemPrompt, query)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completion, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate completion: %w", err)
	}

	content := strings.TrimSpace(completion)
	return &models.GenerationResult{
		Content:    content,
		ModelUsed:  s.model,
		TokensUsed: s.countTokens(prompt, content),
	}, nil
}

func (s *Service) countTokens(prompt, completion string) int {
	if s.encoder == nil {
		return 0
	}
	return len(s.encoder.Encode(prompt, nil, nil)) + len(s.encoder.Encode(completion, nil, nil))
}
