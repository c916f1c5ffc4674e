package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"quizcraft/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

const gradingResultSchemaURL = "schema://grading-result.json"

var gradingResultSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"grade", "summary"},
	"properties": map[string]interface{}{
		"grade":   map[string]interface{}{"type": "number"},
		"summary": map[string]interface{}{"type": "string"},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func gradingSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(gradingResultSchemaURL, gradingResultSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(gradingResultSchemaURL)
	})
	return compiledSchema, compileErr
}

// ValidateGradingResult checks the grader output shape and then that the
// aggregate grade lies within [0, itemCount]. Bounds are inclusive up to a
// small epsilon so float sums such as 0.1*3 are not rejected. On a bounds
// violation the decoded result is returned alongside it.
func (v *Validator) ValidateGradingResult(data []byte, itemCount int) (*domain.GradingResult, domain.ValidationErrors) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ValidationErrors{
			domain.NewValidationError("", fmt.Sprintf("output is not valid JSON: %v", err)),
		}
	}

	schema, err := gradingSchema()
	if err != nil {
		return nil, domain.ValidationErrors{domain.NewValidationError("", fmt.Sprintf("compile grading schema: %v", err))}
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, schemaViolations(err)
	}

	var result domain.GradingResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, domain.ValidationErrors{domain.NewValidationError("", fmt.Sprintf("decode grading result: %v", err))}
	}

	if violations := v.ValidateGradeBounds(result.Grade, itemCount); len(violations) > 0 {
		return &result, violations
	}
	return &result, nil
}

// ValidateGradeBounds enforces 0 <= grade <= itemCount.
func (v *Validator) ValidateGradeBounds(grade float64, itemCount int) domain.ValidationErrors {
	upper := float64(itemCount) * domain.MaxPointsPerItem
	if grade < -domain.GradeBoundEpsilon || grade > upper+domain.GradeBoundEpsilon {
		return domain.ValidationErrors{{
			Field:   "grade",
			Message: fmt.Sprintf("grade %v is outside the allowed range [0, %d]", grade, itemCount),
			Code:    domain.CodeGradeOutOfRange,
		}}
	}
	return nil
}

func schemaViolations(err error) domain.ValidationErrors {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return domain.ValidationErrors{domain.NewValidationError("", err.Error())}
	}
	var violations domain.ValidationErrors
	collectLeaves(verr, &violations)
	if len(violations) == 0 {
		violations = append(violations, domain.NewValidationError("", verr.Error()))
	}
	return violations
}

func collectLeaves(verr *jsonschema.ValidationError, out *domain.ValidationErrors) {
	if required, ok := verr.ErrorKind.(*kind.Required); ok {
		for _, field := range required.Missing {
			*out = append(*out, domain.NewMissingFieldError(field))
		}
		return
	}
	if len(verr.Causes) == 0 {
		keyword := "schema"
		if verr.ErrorKind != nil {
			keyword = strings.Join(verr.ErrorKind.KeywordPath(), "/")
		}
		*out = append(*out, domain.ValidationError{
			Field:   strings.Join(verr.InstanceLocation, "."),
			Message: fmt.Sprintf("grading result violates %q", keyword),
			Code:    domain.CodeInvalidFormat,
		})
		return
	}
	for _, cause := range verr.Causes {
		collectLeaves(cause, out)
	}
}
