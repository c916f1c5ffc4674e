package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/util"

	"go.uber.org/zap"
)

// CourseService manages courses and their cascading deletion.
type CourseService interface {
	CreateCourse(ctx context.Context, userID string, req dto.CreateCourseRequest) (*domain.Course, error)
	DeleteCourse(ctx context.Context, userID, courseID string) error
}

type courseService struct {
	courses     domain.CourseRepository
	materials   domain.MaterialRepository
	generations domain.GenerationRepository
	blobs       domain.BlobStore
	now         func() time.Time
}

func NewCourseService(
	courses domain.CourseRepository,
	materials domain.MaterialRepository,
	generations domain.GenerationRepository,
	blobs domain.BlobStore,
) CourseService {
	return &courseService{
		courses:     courses,
		materials:   materials,
		generations: generations,
		blobs:       blobs,
		now:         time.Now,
	}
}

// MaterialsPrefix is the blob prefix holding a course's processed material text.
func MaterialsPrefix(userID, courseID string) string {
	return fmt.Sprintf("users/%s/courses/%s/lectureMaterials", userID, courseID)
}

// MaterialPath is the blob path of one material's processed text.
func MaterialPath(userID, courseID, materialID string) string {
	return MaterialsPrefix(userID, courseID) + "/" + materialID
}

func (s *courseService) CreateCourse(ctx context.Context, userID string, req dto.CreateCourseRequest) (*domain.Course, error) {
	course := domain.NewCourse(util.NewULID(), userID, strings.TrimSpace(req.CourseName), strings.TrimSpace(req.CourseCode), s.now().UTC())
	if err := s.courses.CreateCourse(ctx, course); err != nil {
		return nil, domain.NewInternalError("Failed to create course", err)
	}
	logger.Get().Info("Course created", zap.String("course_id", course.ID), zap.String("user_id", userID))
	return course, nil
}

// DeleteCourse removes material documents, material blobs, each generation's
// questions, the generations and finally the course itself, in that order.
// There is no rollback: a failure leaves the steps already taken applied.
func (s *courseService) DeleteCourse(ctx context.Context, userID, courseID string) error {
	l := logger.Get().With(zap.String("course_id", courseID), zap.String("user_id", userID))

	if _, err := s.courses.GetCourse(ctx, userID, courseID); err != nil {
		return err
	}

	if err := s.materials.DeleteMaterials(ctx, userID, courseID); err != nil {
		l.Error("Failed to delete course materials", zap.Error(err))
		return domain.NewInternalError("Failed to delete course materials", err)
	}

	if err := s.blobs.DeletePrefix(ctx, MaterialsPrefix(userID, courseID)); err != nil {
		l.Error("Failed to delete material blobs", zap.Error(err))
		return err
	}

	generationIDs, err := s.generations.ListGenerationIDs(ctx, userID, courseID)
	if err != nil {
		l.Error("Failed to list course generations", zap.Error(err))
		return domain.NewInternalError("Failed to list course generations", err)
	}
	for _, id := range generationIDs {
		if err := s.generations.DeleteQuestions(ctx, id); err != nil {
			l.Error("Failed to delete generation questions", zap.String("generation_id", id), zap.Error(err))
			return domain.NewInternalError("Failed to delete generation questions", err)
		}
	}

	if err := s.generations.DeleteGenerations(ctx, userID, courseID); err != nil {
		l.Error("Failed to delete course generations", zap.Error(err))
		return domain.NewInternalError("Failed to delete course generations", err)
	}

	if err := s.courses.DeleteCourse(ctx, userID, courseID); err != nil {
		l.Error("Failed to delete course", zap.Error(err))
		return domain.NewInternalError("Failed to delete course", err)
	}

	l.Info("Course deleted", zap.Int("generations", len(generationIDs)))
	return nil
}
