package main

import (
	"context"
	"log"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/database"
	"quizcraft/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		l.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			l.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	if err := database.EnsureIndexes(ctx, client.Database(cfg.Mongo.Database)); err != nil {
		l.Fatal("Failed to create indexes", zap.Error(err))
	}
	l.Info("Indexes are up to date", zap.String("database", cfg.Mongo.Database), zap.Int("indexes", len(database.Indexes())))
}
