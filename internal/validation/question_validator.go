package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"quizcraft/internal/domain"
)

const (
	MinNicknameLength = 2
	MaxNicknameLength = 100
	MinMCQOptions     = 2
)

const openEndedAnswerMessage = "Correct answer must be a non-empty string or a non-empty array of non-empty strings."

// ParseQuestionBatch decodes raw JSON and validates it as a question batch.
// Numbers are decoded exactly so that integer checks are not fooled by floats.
func (v *Validator) ParseQuestionBatch(data []byte) (*domain.QuestionBatch, domain.ValidationErrors) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var candidate interface{}
	if err := dec.Decode(&candidate); err != nil {
		return nil, domain.ValidationErrors{
			domain.NewValidationError("", fmt.Sprintf("output is not valid JSON: %v", err)),
		}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, domain.ValidationErrors{
			domain.NewValidationError("", "output is not valid JSON: unexpected data after top-level value"),
		}
	}
	return v.ValidateQuestionBatch(candidate)
}

// ValidateQuestionBatch checks a decoded candidate against the question union.
// Every violation across all elements is collected before returning; the
// batch is returned only when none were found. The candidate is never modified.
func (v *Validator) ValidateQuestionBatch(candidate interface{}) (*domain.QuestionBatch, domain.ValidationErrors) {
	var violations, warnings domain.ValidationErrors

	obj, ok := candidate.(map[string]interface{})
	if !ok {
		return nil, domain.ValidationErrors{
			domain.NewValidationError("", fmt.Sprintf("expected object, received %s", typeName(candidate))),
		}
	}

	var questions []domain.Question
	rawQuestions, present := obj["questions"]
	switch list, isList := rawQuestions.([]interface{}); {
	case !present:
		violations = append(violations, domain.NewMissingFieldError("questions"))
	case !isList:
		violations = append(violations, typeViolation("questions", "array", rawQuestions))
	default:
		questions = make([]domain.Question, 0, len(list))
		for i, item := range list {
			q, qViolations, qWarnings := v.validateQuestion(fmt.Sprintf("questions[%d]", i), item)
			violations = append(violations, qViolations...)
			warnings = append(warnings, qWarnings...)
			if q != nil {
				questions = append(questions, q)
			}
		}
	}

	nickname, nicknameViolations := validateNickname(obj)
	violations = append(violations, nicknameViolations...)

	if len(violations) > 0 {
		return nil, violations
	}
	return &domain.QuestionBatch{
		Questions:          questions,
		GenerationNickname: nickname,
		Warnings:           warnings,
	}, nil
}

// ValidateQuestion validates a single candidate question.
func (v *Validator) ValidateQuestion(candidate interface{}) (domain.Question, domain.ValidationErrors) {
	q, violations, _ := v.validateQuestion("", candidate)
	if len(violations) > 0 {
		return nil, violations
	}
	return q, nil
}

func (v *Validator) validateQuestion(path string, candidate interface{}) (domain.Question, domain.ValidationErrors, domain.ValidationErrors) {
	obj, ok := candidate.(map[string]interface{})
	if !ok {
		return nil, domain.ValidationErrors{typeViolation(path, "object", candidate)}, nil
	}

	rawType, present := obj["questionType"]
	if !present {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError(join(path, "questionType"))}, nil
	}
	typeStr, _ := rawType.(string)
	questionType := domain.QuestionType(typeStr)
	if !questionType.IsValid() {
		return nil, domain.ValidationErrors{domain.NewWrongVariantError(join(path, "questionType"), rawType)}, nil
	}

	var violations domain.ValidationErrors
	text, textViolations := nonEmptyString(obj, join(path, "questionText"), "Question text cannot be empty.")
	violations = append(violations, textViolations...)
	explanation, explanationViolations := optionalString(obj, join(path, "explanation"))
	violations = append(violations, explanationViolations...)

	var (
		options       []string
		correctIndex  int
		correctBool   bool
		correctAnswer domain.Answer
	)
	switch questionType {
	case domain.QuestionTypeMultipleChoice:
		var optViolations, idxViolations domain.ValidationErrors
		options, optViolations = mcqOptions(obj, join(path, "options"))
		correctIndex, idxViolations = mcqIndex(obj, join(path, "correctAnswer"))
		violations = append(violations, optViolations...)
		violations = append(violations, idxViolations...)
	case domain.QuestionTypeTrueFalse:
		violations = append(violations, emptyOptions(obj, join(path, "options"), "true/false")...)
		b, isBool := obj["correctAnswer"].(bool)
		if _, present := obj["correctAnswer"]; !present {
			violations = append(violations, domain.NewMissingFieldError(join(path, "correctAnswer")))
		} else if !isBool {
			violations = append(violations, typeViolation(join(path, "correctAnswer"), "boolean", obj["correctAnswer"]))
		}
		correctBool = b
	case domain.QuestionTypeShortAnswer, domain.QuestionTypeFillInTheBlank:
		violations = append(violations, emptyOptions(obj, join(path, "options"), string(questionType))...)
		var answerViolations domain.ValidationErrors
		correctAnswer, answerViolations = openEndedAnswer(obj, join(path, "correctAnswer"))
		violations = append(violations, answerViolations...)
	}

	if len(violations) > 0 {
		return nil, violations, nil
	}

	// Cross-field refinements run only on structurally valid elements.
	var warnings domain.ValidationErrors
	if questionType == domain.QuestionTypeMultipleChoice && correctIndex >= len(options) {
		violations = append(violations, domain.ValidationError{
			Field: join(path, "correctAnswer"),
			Message: fmt.Sprintf(
				"Correct answer index (%d) is out of bounds for the provided options (length: %d). Max allowed index is %d.",
				correctIndex, len(options), len(options)-1),
			Code: domain.CodeOutOfRange,
		})
	}
	if questionType == domain.QuestionTypeFillInTheBlank && !strings.Contains(text, domain.BlankMarker) {
		warnings = append(warnings, domain.NewValidationError(join(path, "questionText"),
			"Fill-in-the-blank question text should ideally contain a blank indicator like '____'."))
	}
	if explanation == "" {
		violations = append(violations, domain.ValidationError{
			Field:   join(path, "explanation"),
			Message: "A short explanation is required for each question.",
			Code:    domain.CodeMissingField,
		})
	}
	if len(violations) > 0 {
		return nil, violations, warnings
	}

	switch questionType {
	case domain.QuestionTypeMultipleChoice:
		return domain.MultipleChoiceQuestion{QuestionText: text, Options: options, CorrectIndex: correctIndex, ExplanationMD: explanation}, nil, warnings
	case domain.QuestionTypeTrueFalse:
		return domain.TrueFalseQuestion{QuestionText: text, CorrectAnswer: correctBool, ExplanationMD: explanation}, nil, warnings
	case domain.QuestionTypeShortAnswer:
		return domain.ShortAnswerQuestion{QuestionText: text, CorrectAnswer: correctAnswer, ExplanationMD: explanation}, nil, warnings
	default:
		return domain.FillInTheBlankQuestion{QuestionText: text, CorrectAnswer: correctAnswer, ExplanationMD: explanation}, nil, warnings
	}
}

func validateNickname(obj map[string]interface{}) (string, domain.ValidationErrors) {
	raw, present := obj["generationNickname"]
	if !present {
		return "", domain.ValidationErrors{domain.NewMissingFieldError("generationNickname")}
	}
	nickname, ok := raw.(string)
	if !ok {
		return "", domain.ValidationErrors{typeViolation("generationNickname", "string", raw)}
	}
	if n := utf8.RuneCountInString(nickname); n < MinNicknameLength || n > MaxNicknameLength {
		return "", domain.ValidationErrors{
			domain.NewOutOfRangeError("generationNickname", fmt.Sprintf("length %d", n), MinNicknameLength, MaxNicknameLength),
		}
	}
	return nickname, nil
}

func nonEmptyString(obj map[string]interface{}, path, emptyMessage string) (string, domain.ValidationErrors) {
	raw, present := obj[lastSegment(path)]
	if !present {
		return "", domain.ValidationErrors{domain.NewMissingFieldError(path)}
	}
	s, ok := raw.(string)
	if !ok {
		return "", domain.ValidationErrors{typeViolation(path, "string", raw)}
	}
	if s == "" {
		return "", domain.ValidationErrors{domain.NewValidationError(path, emptyMessage)}
	}
	return s, nil
}

func optionalString(obj map[string]interface{}, path string) (string, domain.ValidationErrors) {
	raw, present := obj[lastSegment(path)]
	if !present {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", domain.ValidationErrors{typeViolation(path, "string", raw)}
	}
	return s, nil
}

func mcqOptions(obj map[string]interface{}, path string) ([]string, domain.ValidationErrors) {
	raw, present := obj["options"]
	if !present {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError(path)}
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, domain.ValidationErrors{typeViolation(path, "array", raw)}
	}

	var violations domain.ValidationErrors
	if len(list) < MinMCQOptions {
		violations = append(violations, domain.ValidationError{
			Field:   path,
			Message: "Multiple-choice questions must have at least two options.",
			Code:    domain.CodeOutOfRange,
		})
	}
	options := make([]string, 0, len(list))
	for i, item := range list {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		s, isString := item.(string)
		switch {
		case !isString:
			violations = append(violations, typeViolation(itemPath, "string", item))
		case s == "":
			violations = append(violations, domain.NewValidationError(itemPath, "Option text cannot be empty."))
		default:
			options = append(options, s)
		}
	}
	return options, violations
}

func mcqIndex(obj map[string]interface{}, path string) (int, domain.ValidationErrors) {
	raw, present := obj["correctAnswer"]
	if !present {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError(path)}
	}
	n, isNumber := exactNumber(raw)
	if !isNumber {
		return 0, domain.ValidationErrors{typeViolation(path, "number", raw)}
	}
	if n == nil || !n.IsInt() {
		return 0, domain.ValidationErrors{domain.NewValidationError(path, "Expected integer, received float")}
	}
	if n.Sign() < 0 {
		return 0, domain.ValidationErrors{domain.NewValidationError(path, "Correct answer index must be a non-negative integer.")}
	}
	if n.Cmp(big.NewFloat(math.MaxInt32)) > 0 {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError(path, raw, 0, math.MaxInt32)}
	}
	i, _ := n.Int64()
	return int(i), nil
}

// emptyOptions enforces that non-MCQ variants carry no options. An absent
// field is treated as an empty list.
func emptyOptions(obj map[string]interface{}, path, variant string) domain.ValidationErrors {
	raw, present := obj["options"]
	if !present {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return domain.ValidationErrors{typeViolation(path, "array", raw)}
	}
	var violations domain.ValidationErrors
	for i, item := range list {
		if _, isString := item.(string); !isString {
			violations = append(violations, typeViolation(fmt.Sprintf("%s[%d]", path, i), "string", item))
		}
	}
	if len(list) > 0 {
		violations = append(violations, domain.NewValidationError(path,
			fmt.Sprintf("Options should be empty for %s questions.", variant)))
	}
	return violations
}

func openEndedAnswer(obj map[string]interface{}, path string) (domain.Answer, domain.ValidationErrors) {
	raw, present := obj["correctAnswer"]
	if !present {
		return domain.Answer{}, domain.ValidationErrors{domain.NewMissingFieldError(path)}
	}
	switch v := raw.(type) {
	case string:
		if v != "" {
			return domain.TextAnswer(v), nil
		}
	case []interface{}:
		if len(v) == 0 {
			break
		}
		texts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok || s == "" {
				return domain.Answer{}, domain.ValidationErrors{domain.NewValidationError(path, openEndedAnswerMessage)}
			}
			texts = append(texts, s)
		}
		return domain.TextListAnswer(texts...), nil
	}
	return domain.Answer{}, domain.ValidationErrors{domain.NewValidationError(path, openEndedAnswerMessage)}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// exactNumber parses a numeric value without losing range or precision, so
// literals beyond float64 still compare correctly. NaN yields (nil, true).
func exactNumber(v interface{}) (*big.Float, bool) {
	if n, ok := v.(json.Number); ok {
		f, _, err := big.ParseFloat(string(n), 10, 256, big.ToNearestEven)
		return f, err == nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil, false
	}
	if math.IsNaN(f) {
		return nil, true
	}
	return new(big.Float).SetFloat64(f), true
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case json.Number:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

func typeViolation(path, expected string, got interface{}) domain.ValidationError {
	return domain.ValidationError{
		Field:   path,
		Message: fmt.Sprintf("Expected %s, received %s", expected, typeName(got)),
		Code:    domain.CodeInvalidFormat,
	}
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
