package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
)

const (
	MinMaterials      = 1
	MaxMaterials      = 50
	MinQuestions      = 1
	MaxQuestions      = 50
	MaxCourseName     = 200
	MaxCustomPrompt   = 2000
	MaxUserAnswerSize = 2000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateCourseRequest validates the create course request
func (v *Validator) ValidateCreateCourseRequest(req dto.CreateCourseRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	name := strings.TrimSpace(req.CourseName)
	if name == "" {
		errors = append(errors, domain.NewMissingFieldError("courseName"))
	} else if utf8.RuneCountInString(name) > MaxCourseName {
		errors = append(errors, domain.NewOutOfRangeError("courseName", utf8.RuneCountInString(name), 1, MaxCourseName))
	}
	return errors
}

// ValidateUploadMaterialRequest validates the upload materials request
func (v *Validator) ValidateUploadMaterialRequest(req dto.UploadMaterialRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(req.Path) == "" {
		errors = append(errors, domain.NewMissingFieldError("path"))
	}
	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	}
	if strings.TrimSpace(req.CourseID) == "" {
		errors = append(errors, domain.NewMissingFieldError("courseId"))
	}
	if strings.TrimSpace(req.TempURL) == "" {
		errors = append(errors, domain.NewMissingFieldError("tempUrl"))
	} else if !isHTTPURL(req.TempURL) {
		errors = append(errors, domain.NewInvalidFormatError("tempUrl", req.TempURL))
	}
	return errors
}

// ValidateGenerateQuestionsRequest validates the generation input: 1..50
// materials, an integer question count in 1..50, a known difficulty and
// known target question types.
func (v *Validator) ValidateGenerateQuestionsRequest(req dto.GenerateQuestionsRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.CourseID) == "" {
		errors = append(errors, domain.NewMissingFieldError("courseid"))
	}

	if len(req.Materials) < MinMaterials || len(req.Materials) > MaxMaterials {
		errors = append(errors, domain.NewOutOfRangeError("materials", len(req.Materials), MinMaterials, MaxMaterials))
	}
	for i, m := range req.Materials {
		if strings.TrimSpace(m) == "" {
			errors = append(errors, domain.NewMissingFieldError(fmt.Sprintf("materials[%d]", i)))
		}
	}

	switch {
	case req.NumQuestions != math.Trunc(req.NumQuestions):
		errors = append(errors, domain.NewInvalidFormatError("numQuestions", req.NumQuestions))
	case req.NumQuestions < MinQuestions || req.NumQuestions > MaxQuestions:
		errors = append(errors, domain.NewOutOfRangeError("numQuestions", req.NumQuestions, MinQuestions, MaxQuestions))
	}

	if !domain.Difficulty(req.DifficultyLevel).IsValid() {
		errors = append(errors, domain.NewInvalidFormatError("difficultyLevel", req.DifficultyLevel))
	}

	for i, t := range req.TargetQuestionTypes {
		if !domain.QuestionType(t).IsValid() {
			errors = append(errors, domain.NewWrongVariantError(fmt.Sprintf("targetQuestionTypes[%d]", i), t))
		}
	}

	if utf8.RuneCountInString(req.Prompt) > MaxCustomPrompt {
		errors = append(errors, domain.NewOutOfRangeError("prompt", utf8.RuneCountInString(req.Prompt), 0, MaxCustomPrompt))
	}

	return errors
}

// ValidateGradeRequest validates the grade request
func (v *Validator) ValidateGradeRequest(req dto.GradeRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(req.GenerationID) == "" {
		errors = append(errors, domain.NewMissingFieldError("generationId"))
	}
	if strings.TrimSpace(req.CourseID) == "" {
		errors = append(errors, domain.NewMissingFieldError("courseId"))
	}
	return errors
}

// ValidateSubmitAnswersRequest checks identifiers only; answer shapes depend
// on the stored questions and are checked by ValidateUserAnswer.
func (v *Validator) ValidateSubmitAnswersRequest(req dto.SubmitAnswersRequest) domain.ValidationErrors {
	errors := v.ValidateGradeRequest(dto.GradeRequest{GenerationID: req.GenerationID, CourseID: req.CourseID})
	if len(req.Answers) == 0 {
		errors = append(errors, domain.NewMissingFieldError("answers"))
	}
	seen := make(map[string]bool, len(req.Answers))
	for i, a := range req.Answers {
		path := fmt.Sprintf("answers[%d].questionId", i)
		switch {
		case strings.TrimSpace(a.QuestionID) == "":
			errors = append(errors, domain.NewMissingFieldError(path))
		case seen[a.QuestionID]:
			errors = append(errors, domain.NewValidationError(path, "duplicate question id"))
		}
		seen[a.QuestionID] = true
	}
	return errors
}

// ValidateUserAnswer decodes a submitted answer according to the question
// variant: an option index for multiple-choice, a boolean for true-false and
// a string for the open-ended types.
func (v *Validator) ValidateUserAnswer(field string, q domain.QuestionRecord, raw json.RawMessage) (domain.Answer, domain.ValidationErrors) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value interface{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.Answer{}, domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if err := dec.Decode(&value); err != nil {
		return domain.Answer{}, domain.ValidationErrors{domain.NewInvalidFormatError(field, string(raw))}
	}

	switch q.QuestionType {
	case domain.QuestionTypeMultipleChoice:
		n, ok := exactNumber(value)
		if !ok || n == nil || !n.IsInt() {
			return domain.Answer{}, domain.ValidationErrors{typeViolation(field, "integer", value)}
		}
		if n.Sign() < 0 || n.Cmp(big.NewFloat(float64(len(q.Options)-1))) > 0 {
			return domain.Answer{}, domain.ValidationErrors{domain.NewOutOfRangeError(field, value, 0, len(q.Options)-1)}
		}
		i, _ := n.Int64()
		return domain.IndexAnswer(int(i)), nil
	case domain.QuestionTypeTrueFalse:
		b, ok := value.(bool)
		if !ok {
			return domain.Answer{}, domain.ValidationErrors{typeViolation(field, "boolean", value)}
		}
		return domain.BoolAnswer(b), nil
	case domain.QuestionTypeShortAnswer, domain.QuestionTypeFillInTheBlank:
		s, ok := value.(string)
		if !ok {
			return domain.Answer{}, domain.ValidationErrors{typeViolation(field, "string", value)}
		}
		if utf8.RuneCountInString(s) > MaxUserAnswerSize {
			return domain.Answer{}, domain.ValidationErrors{domain.NewOutOfRangeError(field, utf8.RuneCountInString(s), 0, MaxUserAnswerSize)}
		}
		return domain.TextAnswer(s), nil
	default:
		return domain.Answer{}, domain.ValidationErrors{domain.NewWrongVariantError(field, q.QuestionType)}
	}
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
