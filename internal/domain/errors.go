package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeUpstream     ErrorCode = "UPSTREAM_ERROR"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"
	CodeWrongVariant  ErrorCode = "WRONG_VARIANT"

	// Quiz specific errors
	CodeGenerationNotFound   ErrorCode = "GENERATION_NOT_FOUND"
	CodeCourseNotFound       ErrorCode = "COURSE_NOT_FOUND"
	CodeLLMServiceError      ErrorCode = "LLM_SERVICE_ERROR"
	CodeLLMOutputRejected    ErrorCode = "LLM_OUTPUT_REJECTED"
	CodeGradeOutOfRange      ErrorCode = "GRADE_OUT_OF_RANGE"
	CodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is/As
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a key/value pair that the error handler returns as details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUpstreamError(service string, cause error) *DomainError {
	return NewError(CodeUpstream, fmt.Sprintf("%s request failed", service), cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewCourseNotFoundError(courseID string) *DomainError {
	return NewError(CodeCourseNotFound, fmt.Sprintf("Course not found with ID: %s", courseID), nil)
}

func NewGenerationNotFoundError(generationID string) *DomainError {
	return NewError(CodeGenerationNotFound, fmt.Sprintf("Quiz generation not found with ID: %s", generationID), nil)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", cause)
}

// NewLLMOutputRejectedError reports model output that failed validation.
// The violations are kept as the cause so they stay visible in logs.
func NewLLMOutputRejectedError(violations ValidationErrors) *DomainError {
	return NewError(CodeLLMOutputRejected, "Generated output failed validation", violations).
		WithContext("violations", violations)
}

func NewGradeOutOfRangeError(grade float64, itemCount int) *DomainError {
	return NewError(CodeGradeOutOfRange,
		fmt.Sprintf("Grade %.2f is outside the allowed range [0, %d]", grade, itemCount), nil)
}

func NewUnsupportedMediaTypeError(mimeType string) *DomainError {
	return NewError(CodeUnsupportedMediaType, fmt.Sprintf("Unsupported MIME type: %s", mimeType), nil)
}

// ValidationError describes one violated rule. Field is a path such as
// "questions[2].correctAnswer".
type ValidationError struct {
	Field   string    `json:"field"`
	Message string    `json:"message"`
	Code    ErrorCode `json:"code"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the rejection returned by every validator in this module.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return fmt.Sprintf("validation failed (%d violations): %s", len(v), strings.Join(parts, "; "))
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message, Code: CodeValidation}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field), Code: CodeMissingField}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("invalid format for %s: %v", field, value), Code: CodeInvalidFormat}
}

func NewOutOfRangeError(field string, value interface{}, min, max interface{}) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s value %v is out of range [%v, %v]", field, value, min, max),
		Code:    CodeOutOfRange,
	}
}

func NewWrongVariantError(field string, value interface{}) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("unrecognized question type %v", value),
		Code:    CodeWrongVariant,
	}
}
