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
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// GenerationMongoRepository implements domain.GenerationRepository over the
// quizGenerations and questions collections.
type GenerationMongoRepository struct {
	generations *mongo.Collection
	questions   *mongo.Collection
}

func NewGenerationMongoRepository(db *mongo.Database) domain.GenerationRepository {
	return &GenerationMongoRepository{
		generations: db.Collection(database.CollectionGenerations),
		questions:   db.Collection(database.CollectionQuestions),
	}
}

func (r *GenerationMongoRepository) SaveGeneration(ctx context.Context, generation *domain.QuizGeneration) error {
	if generation == nil {
		return fmt.Errorf("cannot save nil generation")
	}
	if _, err := r.generations.InsertOne(ctx, generation); err != nil {
		return fmt.Errorf("failed to insert generation %s: %w", generation.ID, err)
	}
	return nil
}

// SaveQuestions inserts the questions concurrently. Writes that already
// succeeded are not rolled back when another fails.
func (r *GenerationMongoRepository) SaveQuestions(ctx context.Context, generationID string, questions []domain.QuestionRecord) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range questions {
		q := questions[i]
		q.GenerationID = generationID
		g.Go(func() error {
			if _, err := r.questions.InsertOne(gctx, q); err != nil {
				return fmt.Errorf("failed to insert question %s: %w", q.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *GenerationMongoRepository) GetGeneration(ctx context.Context, userID, courseID, generationID string) (*domain.QuizGeneration, error) {
	var generation domain.QuizGeneration
	err := r.generations.FindOne(ctx, bson.M{
		"_id":      generationID,
		"userId":   userID,
		"courseId": courseID,
	}).Decode(&generation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewGenerationNotFoundError(generationID)
		}
		return nil, fmt.Errorf("failed to get generation %s: %w", generationID, err)
	}
	return &generation, nil
}

// ListQuestions returns the questions of a generation ordered by id. Ids are
// monotonic ULIDs, so this is the order they were generated in.
func (r *GenerationMongoRepository) ListQuestions(ctx context.Context, generationID string) ([]domain.QuestionRecord, error) {
	cursor, err := r.questions.Find(ctx,
		bson.M{"generationId": generationID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query questions of generation %s: %w", generationID, err)
	}
	defer cursor.Close(ctx)

	questions := []domain.QuestionRecord{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions of generation %s: %w", generationID, err)
	}
	return questions, nil
}

func (r *GenerationMongoRepository) SetUserAnswer(ctx context.Context, generationID, questionID string, answer domain.Answer) error {
	res, err := r.questions.UpdateOne(ctx,
		bson.M{"_id": questionID, "generationId": generationID},
		bson.M{"$set": bson.M{"userAnswer": answer}})
	if err != nil {
		return fmt.Errorf("failed to store answer for question %s: %w", questionID, err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("Question not found with ID: %s", questionID))
	}
	return nil
}

func (r *GenerationMongoRepository) CompleteGeneration(ctx context.Context, generationID string, grade float64, summary string, completedAt time.Time) error {
	res, err := r.generations.UpdateOne(ctx,
		bson.M{"_id": generationID},
		bson.M{"$set": bson.M{
			"status":      domain.GenerationStatusCompleted,
			"completedAt": completedAt,
			"grade":       grade,
			"summary":     summary,
		}})
	if err != nil {
		return fmt.Errorf("failed to complete generation %s: %w", generationID, err)
	}
	if res.MatchedCount == 0 {
		return domain.NewGenerationNotFoundError(generationID)
	}
	return nil
}

func (r *GenerationMongoRepository) ListGenerationIDs(ctx context.Context, userID, courseID string) ([]string, error) {
	return listIDs(ctx, r.generations, bson.M{"userId": userID, "courseId": courseID})
}

func (r *GenerationMongoRepository) DeleteQuestions(ctx context.Context, generationID string) error {
	if _, err := r.questions.DeleteMany(ctx, bson.M{"generationId": generationID}); err != nil {
		return fmt.Errorf("failed to delete questions of generation %s: %w", generationID, err)
	}
	return nil
}

func (r *GenerationMongoRepository) DeleteGenerations(ctx context.Context, userID, courseID string) error {
	if _, err := r.generations.DeleteMany(ctx, bson.M{"userId": userID, "courseId": courseID}); err != nil {
		return fmt.Errorf("failed to delete generations of course %s: %w", courseID, err)
	}
	return nil
}
