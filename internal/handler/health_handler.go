package handler

import (
	"quizcraft/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// Test godoc
// @Summary Health check
// @Description Unauthenticated liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /test [get]
func Test(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "QuizCraft API is running"})
}
