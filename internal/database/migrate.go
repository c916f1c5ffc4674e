package database

import (
	"context"
	"fmt"

	"quizcraft/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// IndexSpec describes the indexes one collection needs.
type IndexSpec struct {
	Collection string
	Models     []mongo.IndexModel
}

// Indexes lists every index the repositories query by.
func Indexes() []IndexSpec {
	return []IndexSpec{
		{Collection: CollectionCourses, Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		}},
		{Collection: CollectionMaterials, Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "courseId", Value: 1}}},
		}},
		{Collection: CollectionGenerations, Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "courseId", Value: 1}}},
		}},
		{Collection: CollectionQuestions, Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "generationId", Value: 1}}},
		}},
	}
}

// EnsureIndexes creates missing indexes. Existing identical indexes are a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range Indexes() {
		names, err := db.Collection(spec.Collection).Indexes().CreateMany(ctx, spec.Models)
		if err != nil {
			return fmt.Errorf("could not create indexes on %s: %w", spec.Collection, err)
		}
		logger.Get().Info("Indexes ensured", zap.String("collection", spec.Collection), zap.Strings("indexes", names))
	}
	return nil
}
