package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"quizcraft/internal/domain"
	"quizcraft/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation errors", domain.ValidationErrors{domain.NewMissingFieldError("courseName")}, fiber.StatusBadRequest, string(domain.CodeValidation)},
		{"invalid input", domain.NewInvalidInputError("bad"), fiber.StatusBadRequest, string(domain.CodeInvalidInput)},
		{"course not found", domain.NewCourseNotFoundError("c1"), fiber.StatusNotFound, string(domain.CodeCourseNotFound)},
		{"generation not found", domain.NewGenerationNotFoundError("g1"), fiber.StatusNotFound, string(domain.CodeGenerationNotFound)},
		{"unauthorized", domain.NewUnauthorizedError("no"), fiber.StatusUnauthorized, string(domain.CodeUnauthorized)},
		{"unsupported media", domain.NewUnsupportedMediaTypeError("image/gif"), fiber.StatusUnsupportedMediaType, string(domain.CodeUnsupportedMediaType)},
		{"llm failure", domain.NewLLMServiceError(errors.New("timeout")), fiber.StatusServiceUnavailable, string(domain.CodeLLMServiceError)},
		{"grade out of range", domain.NewGradeOutOfRangeError(7, 4), fiber.StatusServiceUnavailable, string(domain.CodeGradeOutOfRange)},
		{"upstream", domain.NewUpstreamError("object storage", errors.New("down")), fiber.StatusInternalServerError, string(domain.CodeUpstream)},
		{"wrapped domain error", fmt.Errorf("handler: %w", domain.NewCourseNotFoundError("c2")), fiber.StatusNotFound, string(domain.CodeCourseNotFound)},
		{"fiber error", fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown error", errors.New("boom"), fiber.StatusInternalServerError, string(domain.CodeInternal)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/fail", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestErrorHandler_RejectedOutputListsViolations(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return domain.NewLLMOutputRejectedError(domain.ValidationErrors{
			domain.NewValidationError("questions.0.options", "Multiple choice questions must have at least 2 options"),
		})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body struct {
		Code    string `json:"code"`
		Details struct {
			Violations []domain.ValidationError `json:"violations"`
		} `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeLLMOutputRejected), body.Code)
	require.Len(t, body.Details.Violations, 1)
	assert.Equal(t, "questions.0.options", body.Details.Violations[0].Field)
}
