package evaluator_test

import (
	"context"
	"errors"
	"testing"

	"quizcraft/internal/adapter/evaluator"
	"quizcraft/internal/domain"
	"quizcraft/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.reply, s.err
}

func gradingItems(n int) []domain.GradingItem {
	items := make([]domain.GradingItem, 0, n)
	for i := 0; i < n; i++ {
		answer := domain.BoolAnswer(true)
		items = append(items, domain.NewGradingItem(domain.QuestionRecord{
			ID:            "q",
			QuestionType:  domain.QuestionTypeTrueFalse,
			QuestionText:  "The mitochondria is the powerhouse of the cell.",
			Options:       []string{},
			CorrectAnswer: domain.BoolAnswer(true),
			Explanation:   "Produces ATP.",
			UserAnswer:    &answer,
		}))
	}
	return items
}

func TestLLMAnswerGrader_Success(t *testing.T) {
	model := &stubModel{reply: "```json\n{\"grade\": 3.5, \"summary\": \"Solid work overall.\"}\n```"}
	grader := evaluator.NewLLMAnswerGrader(model, validation.NewValidator())

	result, err := grader.Grade(context.Background(), []string{"cell biology notes"}, gradingItems(4))
	require.NoError(t, err)
	assert.Equal(t, 3.5, result.Grade)
	assert.Equal(t, "Solid work overall.", result.Summary)
	assert.InDelta(t, 0.875, result.Normalize(4), 1e-12)

	assert.Contains(t, model.lastPrompt, evaluator.GradingRubric)
	assert.Contains(t, model.lastPrompt, "cell biology notes")
	assert.Contains(t, model.lastPrompt, `"userAnswer": true`)
	assert.NotContains(t, model.lastPrompt, `"id"`)
}

func TestLLMAnswerGrader_OutOfRange(t *testing.T) {
	model := &stubModel{reply: `{"grade": 5, "summary": "Great"}`}
	grader := evaluator.NewLLMAnswerGrader(model, validation.NewValidator())

	result, err := grader.Grade(context.Background(), nil, gradingItems(4))
	assert.Nil(t, result)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeGradeOutOfRange, domainErr.Code)
	assert.Contains(t, domainErr.Message, "5.00")
}

func TestLLMAnswerGrader_NegativeGradeReportsDecodedValue(t *testing.T) {
	model := &stubModel{reply: `{"grade": -2.5, "summary": "Odd"}`}
	grader := evaluator.NewLLMAnswerGrader(model, validation.NewValidator())

	_, err := grader.Grade(context.Background(), nil, gradingItems(3))
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeGradeOutOfRange, domainErr.Code)
	assert.Equal(t, "Grade -2.50 is outside the allowed range [0, 3]", domainErr.Message)
}

func TestLLMAnswerGrader_ShapeRejected(t *testing.T) {
	model := &stubModel{reply: `{"score": 2}`}
	grader := evaluator.NewLLMAnswerGrader(model, validation.NewValidator())

	_, err := grader.Grade(context.Background(), nil, gradingItems(2))
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeLLMOutputRejected, domainErr.Code)
}

func TestLLMAnswerGrader_ModelError(t *testing.T) {
	grader := evaluator.NewLLMAnswerGrader(&stubModel{err: errors.New("timeout")}, validation.NewValidator())

	_, err := grader.Grade(context.Background(), nil, gradingItems(1))
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
}

func TestGradingRubricIsComplete(t *testing.T) {
	for _, rule := range []string{
		"maximum of 1.0 point",
		"0.1 increments",
		"userAnswer === correctAnswer (index)",
		"userAnswer === correctAnswer (boolean)",
		"minor spelling errors",
		"Only allowed for Short-Answer and Fill-in-the-Blank",
	} {
		assert.Contains(t, evaluator.GradingRubric, rule)
	}

	prompt, err := evaluator.BuildGradingPrompt(nil, gradingItems(1))
	require.NoError(t, err)
	assert.Contains(t, prompt, "never list individual question scores")
	assert.Contains(t, prompt, "must not exceed the total number of questions")
}
