package evaluator

import (
	"context"
	"fmt"

	"quizcraft/internal/adapter/llm"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
	"quizcraft/internal/metrics"
	"quizcraft/internal/validation"

	"go.uber.org/zap"
)

// LLMAnswerGrader implements domain.AnswerGrader
type LLMAnswerGrader struct {
	model     domain.TextGenerator
	validator *validation.Validator
}

// NewLLMAnswerGrader creates a new instance of LLMAnswerGrader
func NewLLMAnswerGrader(model domain.TextGenerator, validator *validation.Validator) *LLMAnswerGrader {
	return &LLMAnswerGrader{model: model, validator: validator}
}

// Grade asks the model for an aggregate score and checks it against
// the rubric bounds. The returned grade is the raw sum, not normalized.
func (e *LLMAnswerGrader) Grade(ctx context.Context, materialTexts []string, items []domain.GradingItem) (*domain.GradingResult, error) {
	l := logger.Get()
	l.Info("Grading answers with LLM", zap.Int("items", len(items)))

	prompt, err := BuildGradingPrompt(materialTexts, items)
	if err != nil {
		return nil, domain.NewInternalError("failed to build grading prompt", err)
	}

	rawLLMResponse, err := e.model.Generate(ctx, prompt)
	if err != nil {
		l.Error("LLM grading call failed", zap.Error(err))
		metrics.ObserveLLMCall("grade", metrics.OutcomeError)
		return nil, domain.NewLLMServiceError(fmt.Errorf("grade answers: %w", err))
	}
	l.Debug("Raw LLM response received", zap.String("raw_response", rawLLMResponse))

	extractedJSONStr, err := llm.ExtractJSONObject(rawLLMResponse)
	if err != nil {
		l.Error("Could not find a JSON object in grader response", zap.Error(err))
		return nil, domain.NewLLMOutputRejectedError(domain.ValidationErrors{domain.NewValidationError("", err.Error())})
	}

	result, violations := e.validator.ValidateGradingResult([]byte(extractedJSONStr), len(items))
	if len(violations) > 0 {
		metrics.ObserveLLMCall("grade", metrics.OutcomeRejected)
		if violations[0].Code == domain.CodeGradeOutOfRange {
			l.Warn("Grader returned an out-of-range grade",
				zap.Float64("grade", result.Grade),
				zap.Int("items", len(items)))
			return nil, domain.NewGradeOutOfRangeError(result.Grade, len(items))
		}
		l.Warn("Grader output rejected", zap.String("violations", violations.Error()))
		return nil, domain.NewLLMOutputRejectedError(violations)
	}

	metrics.ObserveLLMCall("grade", metrics.OutcomeOK)
	l.Info("Answers graded", zap.Float64("grade", result.Grade), zap.Int("items", len(items)))
	return result, nil
}

var _ domain.AnswerGrader = (*LLMAnswerGrader)(nil)
