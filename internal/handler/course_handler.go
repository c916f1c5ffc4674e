package handler

import (
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CourseHandler handles course HTTP requests
type CourseHandler struct {
	service service.CourseService
}

func NewCourseHandler(service service.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates an empty course owned by the caller
// @Tags courses
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} domain.Course
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /course [post]
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	req, ok := middleware.Body[dto.CreateCourseRequest](c)
	if !ok {
		return fiber.ErrBadRequest
	}

	course, err := h.service.CreateCourse(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Deletes a course with its materials, stored text, generations and questions
// @Tags courses
// @Security ApiKeyAuth
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /course/{courseId} [delete]
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")
	if err := h.service.DeleteCourse(c.UserContext(), middleware.UserID(c), courseID); err != nil {
		logger.Get().Error("Failed to delete course", zap.String("course_id", courseID), zap.Error(err))
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Course deleted successfully"})
}
