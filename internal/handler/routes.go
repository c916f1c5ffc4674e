package handler

import (
	"quizcraft/internal/domain"
	"quizcraft/internal/middleware"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Course    *CourseHandler
	Quiz      *QuizHandler
	Verifier  domain.IdentityVerifier
	Validator *validation.Validator
}

// RegisterRoutes mounts the public health check and the protected course and
// quiz routes on router.
func RegisterRoutes(router fiber.Router, h Handlers) {
	v := h.Validator
	auth := middleware.Protected(h.Verifier)

	router.Get("/test", Test)

	courseGroup := router.Group("/course", auth)
	courseGroup.Post("/", middleware.ValidateBody(v.ValidateCreateCourseRequest), h.Course.CreateCourse)
	courseGroup.Delete("/:courseId", h.Course.DeleteCourse)

	quizGroup := router.Group("/quiz", auth)
	quizGroup.Post("/uploadMaterials", middleware.ValidateBody(v.ValidateUploadMaterialRequest), h.Quiz.UploadMaterials)
	quizGroup.Post("/generateQuestions", middleware.ValidateBody(v.ValidateGenerateQuestionsRequest), h.Quiz.GenerateQuestions)
	quizGroup.Post("/submitAnswers", middleware.ValidateBody(v.ValidateSubmitAnswersRequest), h.Quiz.SubmitAnswers)
	quizGroup.Post("/gradeAndSummarize", middleware.ValidateBody(v.ValidateGradeRequest), h.Quiz.GradeAndSummarize)
	quizGroup.Get("/generations/:generationId", h.Quiz.GetGeneration)
}
