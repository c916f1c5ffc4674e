package repository

import (
	"context"
	"fmt"

	"quizcraft/internal/database"
	"quizcraft/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaterialMongoRepository implements domain.MaterialRepository.
type MaterialMongoRepository struct {
	collection *mongo.Collection
}

func NewMaterialMongoRepository(db *mongo.Database) domain.MaterialRepository {
	return &MaterialMongoRepository{collection: db.Collection(database.CollectionMaterials)}
}

func (r *MaterialMongoRepository) SaveMaterial(ctx context.Context, material *domain.LectureMaterial) error {
	if material == nil {
		return fmt.Errorf("cannot save nil material")
	}
	if _, err := r.collection.InsertOne(ctx, material); err != nil {
		return fmt.Errorf("failed to insert material %s: %w", material.ID, err)
	}
	return nil
}

func (r *MaterialMongoRepository) ListMaterialIDs(ctx context.Context, userID, courseID string) ([]string, error) {
	return listIDs(ctx, r.collection, bson.M{"userId": userID, "courseId": courseID})
}

func (r *MaterialMongoRepository) DeleteMaterials(ctx context.Context, userID, courseID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID, "courseId": courseID}); err != nil {
		return fmt.Errorf("failed to delete materials of course %s: %w", courseID, err)
	}
	return nil
}

// listIDs returns the _id of every document matching filter.
func listIDs(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]string, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s ids: %w", coll.Name(), err)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}
