package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizcraft/internal/cache"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const processedTextContentType = "text/plain"

// MaterialService turns a raw upload into a processed lecture material.
type MaterialService interface {
	UploadMaterial(ctx context.Context, userID string, req dto.UploadMaterialRequest) (*domain.LectureMaterial, error)
}

type materialService struct {
	courses    domain.CourseRepository
	materials  domain.MaterialRepository
	extractor  domain.TextExtractor
	summarizer domain.MaterialSummarizer
	blobs      domain.BlobStore
	summaries  SummaryCacheService
	sfGroup    singleflight.Group
	now        func() time.Time
}

func NewMaterialService(
	courses domain.CourseRepository,
	materials domain.MaterialRepository,
	extractor domain.TextExtractor,
	summarizer domain.MaterialSummarizer,
	blobs domain.BlobStore,
	summaries SummaryCacheService,
) MaterialService {
	if summaries == nil {
		summaries = &noopSummaryCacheService{}
	}
	return &materialService{
		courses:    courses,
		materials:  materials,
		extractor:  extractor,
		summarizer: summarizer,
		blobs:      blobs,
		summaries:  summaries,
		now:        time.Now,
	}
}

// UploadMaterial extracts the text behind req.TempURL, stores it as plain
// text under the course's material prefix, summarizes it and records the
// material as processed. The raw upload at req.Path is removed afterwards.
func (s *materialService) UploadMaterial(ctx context.Context, userID string, req dto.UploadMaterialRequest) (*domain.LectureMaterial, error) {
	l := logger.Get().With(zap.String("course_id", req.CourseID), zap.String("user_id", userID))

	if _, err := s.courses.GetCourse(ctx, userID, req.CourseID); err != nil {
		return nil, err
	}

	extracted, err := s.extractor.Extract(ctx, req.TempURL)
	if err != nil {
		l.Warn("Material extraction failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	materialID := util.NewULID()
	path := MaterialPath(userID, req.CourseID, materialID)
	if err := s.blobs.Put(ctx, path, []byte(extracted.Text), processedTextContentType); err != nil {
		l.Error("Failed to store processed material text", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	summary, err := s.summarize(ctx, extracted.Text)
	if err != nil {
		l.Error("Failed to summarize material", zap.String("material_id", materialID), zap.Error(err))
		return nil, err
	}

	now := s.now().UTC()
	material := &domain.LectureMaterial{
		ID:                      materialID,
		UserID:                  userID,
		CourseID:                req.CourseID,
		FileName:                req.Name,
		StoragePath:             path,
		FileType:                extracted.FileType,
		FileSize:                extracted.Size,
		Status:                  domain.MaterialStatusProcessed,
		ProcessedTextContentURL: s.blobs.PublicURL(path),
		Summary:                 summary,
		UploadedAt:              now,
	}
	if err := s.materials.SaveMaterial(ctx, material); err != nil {
		return nil, domain.NewInternalError("Failed to save lecture material", err)
	}

	if err := s.courses.IncrementCounter(ctx, userID, req.CourseID, domain.CourseFieldMaterials, 1, now); err != nil {
		return nil, domain.NewInternalError("Failed to update course material count", err)
	}

	if err := s.blobs.Delete(ctx, req.Path); err != nil {
		l.Warn("Failed to delete raw upload", zap.String("path", req.Path), zap.Error(err))
	}

	l.Info("Lecture material processed",
		zap.String("material_id", materialID),
		zap.String("file_type", extracted.FileType),
		zap.Int("file_size", extracted.Size))
	return material, nil
}

// summarize returns a cached summary when the same text was seen before.
// Concurrent uploads of identical text share one model call.
func (s *materialService) summarize(ctx context.Context, text string) (string, error) {
	cached, err := s.summaries.Get(ctx, text)
	if err == nil {
		logger.Get().Debug("Material summary cache hit")
		return cached, nil
	}
	if !errors.Is(err, ErrSummaryNotFound) {
		logger.Get().Warn("Summary cache read failed, calling the model", zap.Error(err))
	}

	res, err, _ := s.sfGroup.Do(cache.ContentHash(text), func() (interface{}, error) {
		summary, err := s.summarizer.Summarize(ctx, text)
		if err != nil {
			return nil, err
		}
		if errPut := s.summaries.Put(ctx, text, summary); errPut != nil {
			logger.Get().Warn("Failed to cache material summary", zap.Error(errPut))
		}
		return summary, nil
	})
	if err != nil {
		return "", err
	}

	summary, ok := res.(string)
	if !ok {
		return "", fmt.Errorf("unexpected type from singleflight.Do for material summary: %T", res)
	}
	return summary, nil
}
