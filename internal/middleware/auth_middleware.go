package middleware

import (
	"errors"
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// Protected requires a bearer token accepted by the identity verifier and
// stores the caller's uid in the context. A verifier that fails for any
// reason other than a bad token yields 500.
func Protected(verifier domain.IdentityVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		identity, err := verifier.Verify(c.UserContext(), tokenString)
		if err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == domain.CodeUnauthorized {
				return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
					Code:    "INVALID_TOKEN",
					Message: domainErr.Message,
					Status:  fiber.StatusUnauthorized,
				})
			}
			logger.Get().Error("Identity verification failed", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Code:    string(domain.CodeInternal),
				Message: "An error has occured",
				Status:  fiber.StatusInternalServerError,
			})
		}

		c.Locals(UserIDKey, identity.UID)
		return c.Next()
	}
}

// UserID returns the uid stored by Protected, or "" on unprotected routes.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(UserIDKey).(string)
	return uid
}
