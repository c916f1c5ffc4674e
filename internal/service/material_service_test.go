package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type materialMocks struct {
	courses    *MockCourseRepository
	materials  *MockMaterialRepository
	extractor  *MockTextExtractor
	summarizer *MockMaterialSummarizer
	blobs      *MockBlobStore
}

func newMaterialServiceForTest(cache SummaryCacheService) (*materialService, materialMocks) {
	m := materialMocks{
		courses:    new(MockCourseRepository),
		materials:  new(MockMaterialRepository),
		extractor:  new(MockTextExtractor),
		summarizer: new(MockMaterialSummarizer),
		blobs:      new(MockBlobStore),
	}
	svc := NewMaterialService(m.courses, m.materials, m.extractor, m.summarizer, m.blobs, cache).(*materialService)
	svc.now = fixedClock
	return svc, m
}

var uploadReq = dto.UploadMaterialRequest{
	Path:     "uploads/u1/raw-notes.pdf",
	Name:     "notes.pdf",
	CourseID: "c1",
	TempURL:  "https://files.example.com/raw-notes.pdf?sig=abc",
}

func TestMaterialService_UploadMaterial(t *testing.T) {
	svc, m := newMaterialServiceForTest(nil)
	ctx := context.Background()
	text := "Cells are the basic unit of life."

	m.courses.On("GetCourse", ctx, "u1", "c1").Return(&domain.Course{ID: "c1"}, nil)
	m.extractor.On("Extract", ctx, uploadReq.TempURL).Return(&domain.ExtractedText{Text: text, FileType: "application/pdf", Size: 2048}, nil)
	m.blobs.On("Put", ctx, mock.MatchedBy(func(p string) bool {
		return strings.HasPrefix(p, "users/u1/courses/c1/lectureMaterials/")
	}), []byte(text), "text/plain").Return(nil)
	m.blobs.On("PublicURL", mock.Anything).Return("https://cdn.example.com/processed")
	m.summarizer.On("Summarize", ctx, text).Return("Intro to cells.", nil)
	m.materials.On("SaveMaterial", ctx, mock.Anything).Return(nil)
	m.courses.On("IncrementCounter", ctx, "u1", "c1", domain.CourseFieldMaterials, 1, fixedNow).Return(nil)
	m.blobs.On("Delete", ctx, uploadReq.Path).Return(nil)

	material, err := svc.UploadMaterial(ctx, "u1", uploadReq)
	require.NoError(t, err)

	assert.Equal(t, domain.MaterialStatusProcessed, material.Status)
	assert.Equal(t, "notes.pdf", material.FileName)
	assert.Equal(t, "application/pdf", material.FileType)
	assert.Equal(t, 2048, material.FileSize)
	assert.Equal(t, "Intro to cells.", material.Summary)
	assert.Equal(t, "https://cdn.example.com/processed", material.ProcessedTextContentURL)
	assert.Equal(t, MaterialPath("u1", "c1", material.ID), material.StoragePath)
	assert.Equal(t, fixedNow, material.UploadedAt)

	m.materials.AssertExpectations(t)
	m.courses.AssertExpectations(t)
	m.blobs.AssertExpectations(t)
}

func TestMaterialService_UnsupportedMediaTypeStopsEarly(t *testing.T) {
	svc, m := newMaterialServiceForTest(nil)
	ctx := context.Background()

	m.courses.On("GetCourse", ctx, "u1", "c1").Return(&domain.Course{ID: "c1"}, nil)
	m.extractor.On("Extract", ctx, uploadReq.TempURL).Return(nil, domain.NewUnsupportedMediaTypeError("image/gif"))

	_, err := svc.UploadMaterial(ctx, "u1", uploadReq)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnsupportedMediaType, domainErr.Code)
	m.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.materials.AssertNotCalled(t, "SaveMaterial", mock.Anything, mock.Anything)
}

func TestMaterialService_RawDeleteFailureIsNotFatal(t *testing.T) {
	svc, m := newMaterialServiceForTest(nil)
	ctx := context.Background()

	m.courses.On("GetCourse", ctx, "u1", "c1").Return(&domain.Course{ID: "c1"}, nil)
	m.extractor.On("Extract", ctx, mock.Anything).Return(&domain.ExtractedText{Text: "t", FileType: "text/plain", Size: 1}, nil)
	m.blobs.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.blobs.On("PublicURL", mock.Anything).Return("u")
	m.summarizer.On("Summarize", ctx, "t").Return("s", nil)
	m.materials.On("SaveMaterial", ctx, mock.Anything).Return(nil)
	m.courses.On("IncrementCounter", ctx, "u1", "c1", domain.CourseFieldMaterials, 1, fixedNow).Return(nil)
	m.blobs.On("Delete", ctx, uploadReq.Path).Return(errors.New("not found"))

	material, err := svc.UploadMaterial(ctx, "u1", uploadReq)
	require.NoError(t, err)
	assert.NotNil(t, material)
}

func TestMaterialService_SummaryCacheHitSkipsModel(t *testing.T) {
	cache := &ManualMockCache{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			return "cached summary", nil
		},
	}
	svc, m := newMaterialServiceForTest(NewSummaryCacheService(cache, time.Hour))
	ctx := context.Background()

	summary, err := svc.summarize(ctx, "same text")
	require.NoError(t, err)
	assert.Equal(t, "cached summary", summary)
	m.summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestMaterialService_SummaryCacheMissStoresResult(t *testing.T) {
	var stored atomic.Value
	cache := &ManualMockCache{
		SetFunc: func(ctx context.Context, key string, value string, ttl time.Duration) error {
			stored.Store(value)
			assert.Equal(t, 24*time.Hour, ttl)
			return nil
		},
	}
	svc, m := newMaterialServiceForTest(NewSummaryCacheService(cache, 24*time.Hour))
	ctx := context.Background()
	m.summarizer.On("Summarize", ctx, "fresh text").Return("fresh summary", nil).Once()

	summary, err := svc.summarize(ctx, "fresh text")
	require.NoError(t, err)
	assert.Equal(t, "fresh summary", summary)
	assert.Equal(t, "fresh summary", stored.Load())
}

func TestMaterialService_SummarizerFailure(t *testing.T) {
	svc, m := newMaterialServiceForTest(nil)
	ctx := context.Background()
	m.summarizer.On("Summarize", ctx, "x").Return("", domain.NewLLMServiceError(errors.New("quota")))

	_, err := svc.summarize(ctx, "x")
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
}

func TestSummaryCacheService_ReadError(t *testing.T) {
	cache := &ManualMockCache{
		GetFunc: func(ctx context.Context, key string) (string, error) {
			return "", errors.New("redis down")
		},
	}
	svc := NewSummaryCacheService(cache, time.Hour)
	_, err := svc.Get(context.Background(), "text")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSummaryNotFound)

	noop := NewSummaryCacheService(nil, time.Hour)
	_, err = noop.Get(context.Background(), "text")
	assert.ErrorIs(t, err, ErrSummaryNotFound)
	assert.NoError(t, noop.Put(context.Background(), "text", "s"))
}
