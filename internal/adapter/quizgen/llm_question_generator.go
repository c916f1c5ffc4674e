package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizcraft/internal/adapter/llm"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
	"quizcraft/internal/metrics"
	"quizcraft/internal/validation"

	"go.uber.org/zap"
)

// LLMQuestionGenerator implements domain.QuestionGenerator on top of a text model.
type LLMQuestionGenerator struct {
	model     domain.TextGenerator
	validator *validation.Validator
}

func NewLLMQuestionGenerator(model domain.TextGenerator, validator *validation.Validator) *LLMQuestionGenerator {
	return &LLMQuestionGenerator{model: model, validator: validator}
}

// GenerateQuestions prompts the model once and validates the whole reply.
// Any violation rejects the batch; there is no retry.
func (g *LLMQuestionGenerator) GenerateQuestions(ctx context.Context, req domain.GenerationRequest) (*domain.QuestionBatch, error) {
	l := logger.Get()
	prompt := BuildGenerationPrompt(req)
	l.Info("Generating questions with LLM",
		zap.Int("num_questions", req.NumQuestions),
		zap.String("difficulty", string(req.Difficulty)),
		zap.Int("materials", len(req.MaterialTexts)))

	raw, err := g.model.Generate(ctx, prompt)
	if err != nil {
		metrics.ObserveLLMCall("generate", metrics.OutcomeError)
		return nil, domain.NewLLMServiceError(fmt.Errorf("generate questions: %w", err))
	}

	extracted, err := llm.ExtractJSONObject(raw)
	if err != nil {
		l.Warn("LLM question output contained no JSON object", zap.Error(err))
		metrics.ObserveLLMCall("generate", metrics.OutcomeRejected)
		return nil, domain.NewLLMOutputRejectedError(domain.ValidationErrors{domain.NewValidationError("", err.Error())})
	}

	batch, violations := g.validator.ParseQuestionBatch([]byte(extracted))
	if len(violations) > 0 {
		l.Warn("LLM question output rejected",
			zap.Int("violation_count", len(violations)),
			zap.String("violations", violations.Error()))
		metrics.ObserveLLMCall("generate", metrics.OutcomeRejected)
		return nil, domain.NewLLMOutputRejectedError(violations)
	}
	metrics.ObserveLLMCall("generate", metrics.OutcomeOK)

	for _, w := range batch.Warnings {
		l.Warn("Generated question accepted with warning", zap.String("field", w.Field), zap.String("message", w.Message))
	}
	if len(batch.Questions) != req.NumQuestions {
		l.Info("LLM returned a different number of questions than requested",
			zap.Int("requested", req.NumQuestions),
			zap.Int("returned", len(batch.Questions)))
	}
	l.Info("Questions generated", zap.Int("count", len(batch.Questions)), zap.String("nickname", batch.GenerationNickname))
	return batch, nil
}

// LLMMaterialSummarizer implements domain.MaterialSummarizer.
type LLMMaterialSummarizer struct {
	model domain.TextGenerator
}

func NewLLMMaterialSummarizer(model domain.TextGenerator) *LLMMaterialSummarizer {
	return &LLMMaterialSummarizer{model: model}
}

func (s *LLMMaterialSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	raw, err := s.model.Generate(ctx, BuildSummaryPrompt(text))
	if err != nil {
		metrics.ObserveLLMCall("summarize", metrics.OutcomeError)
		return "", domain.NewLLMServiceError(fmt.Errorf("summarize material: %w", err))
	}

	extracted, err := llm.ExtractJSONObject(raw)
	if err != nil {
		return "", domain.NewLLMOutputRejectedError(domain.ValidationErrors{domain.NewValidationError("", err.Error())})
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(extracted), &out); err != nil {
		return "", domain.NewLLMOutputRejectedError(domain.ValidationErrors{domain.NewInvalidFormatError("summary", err)})
	}
	summary := strings.TrimSpace(out.Summary)
	if summary == "" {
		metrics.ObserveLLMCall("summarize", metrics.OutcomeRejected)
		return "", domain.NewLLMOutputRejectedError(domain.ValidationErrors{domain.NewMissingFieldError("summary")})
	}
	metrics.ObserveLLMCall("summarize", metrics.OutcomeOK)
	return summary, nil
}

var (
	_ domain.QuestionGenerator  = (*LLMQuestionGenerator)(nil)
	_ domain.MaterialSummarizer = (*LLMMaterialSummarizer)(nil)
)
