package handler

import (
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles material processing and quiz HTTP requests
type QuizHandler struct {
	materials service.MaterialService
	quizzes   service.QuizService
}

func NewQuizHandler(materials service.MaterialService, quizzes service.QuizService) *QuizHandler {
	return &QuizHandler{materials: materials, quizzes: quizzes}
}

// UploadMaterials godoc
// @Summary Process an uploaded lecture material
// @Description Extracts the text of an uploaded file, stores it and records a summarized material
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.UploadMaterialRequest true "Uploaded file"
// @Success 201 {object} domain.LectureMaterial
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 415 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/uploadMaterials [post]
func (h *QuizHandler) UploadMaterials(c *fiber.Ctx) error {
	req, ok := middleware.Body[dto.UploadMaterialRequest](c)
	if !ok {
		return fiber.ErrBadRequest
	}

	material, err := h.materials.UploadMaterial(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// GenerateQuestions godoc
// @Summary Generate quiz questions
// @Description Generates a validated batch of questions from lecture materials
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionsRequest true "Generation parameters"
// @Success 200 {object} dto.GenerationResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/generateQuestions [post]
func (h *QuizHandler) GenerateQuestions(c *fiber.Ctx) error {
	req, ok := middleware.Body[dto.GenerateQuestionsRequest](c)
	if !ok {
		return fiber.ErrBadRequest
	}

	resp, err := h.quizzes.GenerateQuestions(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswers godoc
// @Summary Submit answers
// @Description Stores the caller's answers on the questions of a generation
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitAnswersRequest true "Answers"
// @Success 200 {object} dto.SubmitAnswersResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/submitAnswers [post]
func (h *QuizHandler) SubmitAnswers(c *fiber.Ctx) error {
	req, ok := middleware.Body[dto.SubmitAnswersRequest](c)
	if !ok {
		return fiber.ErrBadRequest
	}

	resp, err := h.quizzes.SubmitAnswers(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GradeAndSummarize godoc
// @Summary Grade a generation
// @Description Grades the stored answers and returns a normalized score with feedback
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.GradeRequest true "Generation to grade"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/gradeAndSummarize [post]
func (h *QuizHandler) GradeAndSummarize(c *fiber.Ctx) error {
	req, ok := middleware.Body[dto.GradeRequest](c)
	if !ok {
		return fiber.ErrBadRequest
	}

	resp, err := h.quizzes.GradeAndSummarize(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetGeneration godoc
// @Summary Get a generation
// @Description Returns a quiz generation with its questions
// @Tags quiz
// @Security ApiKeyAuth
// @Produce json
// @Param generationId path string true "Generation ID"
// @Param courseId query string true "Course ID"
// @Success 200 {object} dto.GenerationResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/generations/{generationId} [get]
func (h *QuizHandler) GetGeneration(c *fiber.Ctx) error {
	courseID := c.Query("courseId")
	if courseID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("courseId")}
	}

	resp, err := h.quizzes.GetGeneration(c.UserContext(), middleware.UserID(c), courseID, c.Params("generationId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
