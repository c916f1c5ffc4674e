package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizcraft/internal/database"
	"quizcraft/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CourseMongoRepository implements domain.CourseRepository.
type CourseMongoRepository struct {
	collection *mongo.Collection
}

func NewCourseMongoRepository(db *mongo.Database) domain.CourseRepository {
	return &CourseMongoRepository{collection: db.Collection(database.CollectionCourses)}
}

func (r *CourseMongoRepository) CreateCourse(ctx context.Context, course *domain.Course) error {
	if course == nil {
		return fmt.Errorf("cannot save nil course")
	}
	if _, err := r.collection.InsertOne(ctx, course); err != nil {
		return fmt.Errorf("failed to insert course %s: %w", course.ID, err)
	}
	return nil
}

func (r *CourseMongoRepository) GetCourse(ctx context.Context, userID, courseID string) (*domain.Course, error) {
	var course domain.Course
	err := r.collection.FindOne(ctx, bson.M{"_id": courseID, "userId": userID}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewCourseNotFoundError(courseID)
		}
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, err)
	}
	return &course, nil
}

// IncrementCounter adds delta to one of the course counters and bumps updatedAt.
func (r *CourseMongoRepository) IncrementCounter(ctx context.Context, userID, courseID, field string, delta int, now time.Time) error {
	if field != domain.CourseFieldMaterials && field != domain.CourseFieldQuizzes {
		return fmt.Errorf("unknown course counter %q", field)
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": courseID, "userId": userID},
		bson.M{
			"$inc": bson.M{field: delta},
			"$set": bson.M{"updatedAt": now},
		})
	if err != nil {
		return fmt.Errorf("failed to increment %s on course %s: %w", field, courseID, err)
	}
	if res.MatchedCount == 0 {
		return domain.NewCourseNotFoundError(courseID)
	}
	return nil
}

func (r *CourseMongoRepository) DeleteCourse(ctx context.Context, userID, courseID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": courseID, "userId": userID}); err != nil {
		return fmt.Errorf("failed to delete course %s: %w", courseID, err)
	}
	return nil
}
