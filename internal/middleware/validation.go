package middleware

import (
	"quizcraft/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const validatedBodyKey = "validated_body"

// ValidateBody parses the JSON body into T and runs validate on it.
// Violations are returned to the ErrorHandler; a valid body is stored in the
// context for Body to read.
func ValidateBody[T any](validate func(T) domain.ValidationErrors) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body T
		if err := c.BodyParser(&body); err != nil {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("body", "request body is not valid JSON"),
			}
		}

		if errs := validate(body); len(errs) > 0 {
			return errs
		}

		c.Locals(validatedBodyKey, body)
		return c.Next()
	}
}

// Body returns the value stored by ValidateBody.
func Body[T any](c *fiber.Ctx) (T, bool) {
	body, ok := c.Locals(validatedBodyKey).(T)
	return body, ok
}
