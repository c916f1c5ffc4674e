package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
	"quizcraft/internal/metrics"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// Client adapts a langchaingo model to domain.TextGenerator and domain.MediaTranscriber.
type Client struct {
	model       llms.Model
	temperature float64
}

// NewClient wraps an already constructed model.
func NewClient(model llms.Model, temperature float64) *Client {
	return &Client{model: model, temperature: temperature}
}

// NewModel builds the langchaingo model selected by cfg.Provider.
func NewModel(cfg config.LLMConfig) (llms.Model, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	switch cfg.Provider {
	case config.LLMProviderOllama:
		return ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	case config.LLMProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		return openai.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

// Generate sends a single text prompt and returns the raw completion.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()
	start := time.Now()

	response, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(c.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	l.Debug("LLM response received",
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_length", len(response)))
	return response, nil
}

// Transcribe sends a binary document alongside an instruction prompt.
func (c *Client) Transcribe(ctx context.Context, mimeType string, data []byte, prompt string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.BinaryPart(mimeType, data),
				llms.TextPart(prompt),
			},
		},
	}

	resp, err := c.model.GenerateContent(ctx, content, llms.WithTemperature(c.temperature))
	if err != nil {
		logger.Get().Error("Failed to transcribe media with LLM", zap.String("mime_type", mimeType), zap.Error(err))
		metrics.ObserveLLMCall("transcribe", metrics.OutcomeError)
		return "", fmt.Errorf("LLM transcription failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		metrics.ObserveLLMCall("transcribe", metrics.OutcomeRejected)
		return "", errors.New("LLM transcription returned no choices")
	}
	metrics.ObserveLLMCall("transcribe", metrics.OutcomeOK)
	return resp.Choices[0].Content, nil
}

var (
	_ domain.TextGenerator    = (*Client)(nil)
	_ domain.MediaTranscriber = (*Client)(nil)
)
