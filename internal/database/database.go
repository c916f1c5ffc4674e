package database

import (
	"context"
	"fmt"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names.
const (
	CollectionCourses     = "courses"
	CollectionMaterials   = "lectureMaterials"
	CollectionGenerations = "quizGenerations"
	CollectionQuestions   = "questions"
)

// Connect opens a client and pings the primary before returning.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Get().Info("Successfully connected to MongoDB", zap.String("database", cfg.Database))
	return client, nil
}
