package service

import (
	"context"
	"errors"
	"time"

	"quizcraft/internal/cache"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"

	"go.uber.org/zap"
)

// ErrSummaryNotFound is returned when no summary is cached for a text.
var ErrSummaryNotFound = errors.New("material summary not found in cache")

// SummaryCacheService stores material summaries keyed by the hash of the
// extracted text, so re-uploading the same content skips the model call.
type SummaryCacheService interface {
	Get(ctx context.Context, text string) (string, error)
	Put(ctx context.Context, text, summary string) error
}

type summaryCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

func NewSummaryCacheService(cache domain.Cache, ttl time.Duration) SummaryCacheService {
	if cache == nil {
		logger.Get().Warn("SummaryCacheService initialized with nil cache. Service will be no-op.")
		return &noopSummaryCacheService{}
	}
	return &summaryCacheServiceImpl{cache: cache, ttl: ttl}
}

func (s *summaryCacheServiceImpl) Get(ctx context.Context, text string) (string, error) {
	key := cache.MaterialSummaryKey(text)
	summary, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Material summary cache miss", zap.String("key", key))
			return "", ErrSummaryNotFound
		}
		logger.Get().Error("Failed to get material summary from cache", zap.Error(err), zap.String("key", key))
		return "", domain.NewInternalError("failed to read summary cache", err)
	}
	if summary == "" {
		return "", ErrSummaryNotFound
	}
	return summary, nil
}

func (s *summaryCacheServiceImpl) Put(ctx context.Context, text, summary string) error {
	key := cache.MaterialSummaryKey(text)
	if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
		logger.Get().Error("Failed to cache material summary", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError("failed to write summary cache", err)
	}
	logger.Get().Debug("Cached material summary", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

type noopSummaryCacheService struct{}

func (s *noopSummaryCacheService) Get(ctx context.Context, text string) (string, error) {
	return "", ErrSummaryNotFound
}

func (s *noopSummaryCacheService) Put(ctx context.Context, text, summary string) error {
	return nil
}
