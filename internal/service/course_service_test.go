package service

import (
	"context"
	"errors"
	"testing"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type courseMocks struct {
	courses     *MockCourseRepository
	materials   *MockMaterialRepository
	generations *MockGenerationRepository
	blobs       *MockBlobStore
}

func newCourseServiceForTest() (*courseService, courseMocks) {
	m := courseMocks{
		courses:     new(MockCourseRepository),
		materials:   new(MockMaterialRepository),
		generations: new(MockGenerationRepository),
		blobs:       new(MockBlobStore),
	}
	svc := NewCourseService(m.courses, m.materials, m.generations, m.blobs).(*courseService)
	svc.now = fixedClock
	return svc, m
}

func TestCourseService_CreateCourse(t *testing.T) {
	svc, m := newCourseServiceForTest()
	ctx := context.Background()

	m.courses.On("CreateCourse", ctx, mock.MatchedBy(func(c *domain.Course) bool {
		return c.UserID == "u1" && c.CourseName == "Biology" && c.CourseCode == "BIO101" &&
			c.ID != "" && c.CreatedAt.Equal(fixedNow) && c.NumberOfMaterials == 0
	})).Return(nil)

	course, err := svc.CreateCourse(ctx, "u1", dto.CreateCourseRequest{CourseName: "  Biology ", CourseCode: "BIO101"})
	require.NoError(t, err)
	assert.Equal(t, "Biology", course.CourseName)
	m.courses.AssertExpectations(t)
}

func TestCourseService_CreateCourseStoreFailure(t *testing.T) {
	svc, m := newCourseServiceForTest()
	ctx := context.Background()
	m.courses.On("CreateCourse", ctx, mock.Anything).Return(errors.New("mongo down"))

	_, err := svc.CreateCourse(ctx, "u1", dto.CreateCourseRequest{CourseName: "Biology"})
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestCourseService_DeleteCourseOrder(t *testing.T) {
	svc, m := newCourseServiceForTest()
	ctx := context.Background()

	var order []string
	record := func(step string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, step) }
	}

	m.courses.On("GetCourse", ctx, "u1", "c1").Return(&domain.Course{ID: "c1", UserID: "u1"}, nil)
	m.materials.On("DeleteMaterials", ctx, "u1", "c1").Run(record("materials")).Return(nil)
	m.blobs.On("DeletePrefix", ctx, "users/u1/courses/c1/lectureMaterials").Run(record("blobs")).Return(nil)
	m.generations.On("ListGenerationIDs", ctx, "u1", "c1").Return([]string{"g1", "g2"}, nil)
	m.generations.On("DeleteQuestions", ctx, "g1").Run(record("questions:g1")).Return(nil)
	m.generations.On("DeleteQuestions", ctx, "g2").Run(record("questions:g2")).Return(nil)
	m.generations.On("DeleteGenerations", ctx, "u1", "c1").Run(record("generations")).Return(nil)
	m.courses.On("DeleteCourse", ctx, "u1", "c1").Run(record("course")).Return(nil)

	require.NoError(t, svc.DeleteCourse(ctx, "u1", "c1"))
	assert.Equal(t, []string{"materials", "blobs", "questions:g1", "questions:g2", "generations", "course"}, order)
}

func TestCourseService_DeleteCourseStopsOnFailure(t *testing.T) {
	svc, m := newCourseServiceForTest()
	ctx := context.Background()

	m.courses.On("GetCourse", ctx, "u1", "c1").Return(&domain.Course{ID: "c1"}, nil)
	m.materials.On("DeleteMaterials", ctx, "u1", "c1").Return(nil)
	m.blobs.On("DeletePrefix", ctx, mock.Anything).Return(domain.NewUpstreamError("object storage", errors.New("timeout")))

	err := svc.DeleteCourse(ctx, "u1", "c1")
	require.Error(t, err)
	m.generations.AssertNotCalled(t, "ListGenerationIDs", mock.Anything, mock.Anything, mock.Anything)
	m.courses.AssertNotCalled(t, "DeleteCourse", mock.Anything, mock.Anything, mock.Anything)
}

func TestCourseService_DeleteUnknownCourse(t *testing.T) {
	svc, m := newCourseServiceForTest()
	ctx := context.Background()
	m.courses.On("GetCourse", ctx, "u1", "nope").Return(nil, domain.NewCourseNotFoundError("nope"))

	err := svc.DeleteCourse(ctx, "u1", "nope")
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeCourseNotFound, domainErr.Code)
	m.materials.AssertNotCalled(t, "DeleteMaterials", mock.Anything, mock.Anything, mock.Anything)
}

func TestMaterialPath(t *testing.T) {
	assert.Equal(t, "users/u1/courses/c1/lectureMaterials/m1", MaterialPath("u1", "c1", "m1"))
}
