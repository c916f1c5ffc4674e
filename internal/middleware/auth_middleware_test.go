package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"quizcraft/internal/domain"
	"quizcraft/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// ManualMockVerifier implements domain.IdentityVerifier for middleware tests.
type ManualMockVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (*domain.Identity, error)
}

func (m *ManualMockVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return nil, errors.New("VerifyFunc not set on mock")
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name                string
		authHeader          string
		verify              func(ctx context.Context, token string) (*domain.Identity, error)
		expectedStatus      int
		expectedCode        string
		expectedUserIDLocal interface{}
		expectNextCalled    bool
	}{
		{
			name:           "No Auth Header",
			authHeader:     "",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "MISSING_AUTH_HEADER",
		},
		{
			name:           "Malformed Auth Header - No Bearer",
			authHeader:     "Basic some_token",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_AUTH_SCHEME",
		},
		{
			name:           "Bearer No Token",
			authHeader:     "Bearer ",
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "EMPTY_TOKEN",
		},
		{
			name:       "Valid Token",
			authHeader: "Bearer valid_token",
			verify: func(ctx context.Context, token string) (*domain.Identity, error) {
				if token != "valid_token" {
					return nil, domain.NewUnauthorizedError("unexpected token")
				}
				return &domain.Identity{UID: "user123", Email: "a@b.c"}, nil
			},
			expectedStatus:      fiber.StatusOK,
			expectedUserIDLocal: "user123",
			expectNextCalled:    true,
		},
		{
			name:       "Rejected Token",
			authHeader: "Bearer expired",
			verify: func(ctx context.Context, token string) (*domain.Identity, error) {
				return nil, domain.NewError(domain.CodeUnauthorized, "invalid or expired token", errors.New("token is expired"))
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedCode:   "INVALID_TOKEN",
		},
		{
			name:       "Verifier Failure",
			authHeader: "Bearer anything",
			verify: func(ctx context.Context, token string) (*domain.Identity, error) {
				return nil, errors.New("identity provider unreachable")
			},
			expectedStatus: fiber.StatusInternalServerError,
			expectedCode:   string(domain.CodeInternal),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			verifier := &ManualMockVerifier{VerifyFunc: tc.verify}

			nextHandlerCalled := false
			var userIDLocalValue interface{}

			app.Get("/protected", middleware.Protected(verifier), func(c *fiber.Ctx) error {
				nextHandlerCalled = true
				userIDLocalValue = c.Locals(middleware.UserIDKey)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			resp, err := app.Test(req, -1)
			assert.NoError(t, err)
			if err == nil {
				assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			}
			assert.Equal(t, tc.expectNextCalled, nextHandlerCalled)
			assert.Equal(t, tc.expectedUserIDLocal, userIDLocalValue)

			if tc.expectedCode != "" && err == nil {
				var body middleware.ErrorResponse
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tc.expectedCode, body.Code)
				assert.Equal(t, tc.expectedStatus, body.Status)
				assert.NotEmpty(t, body.Message)
			}
		})
	}
}
