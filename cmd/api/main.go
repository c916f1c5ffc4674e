// @title QuizCraft API
// @version 1.0
// @description Course materials, quiz generation and grading for QuizCraft.
// @host localhost:8090
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_ID_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quizcraft/cmd/api/docs"
	"quizcraft/internal/adapter"
	"quizcraft/internal/adapter/evaluator"
	"quizcraft/internal/adapter/extractor"
	"quizcraft/internal/adapter/identity"
	"quizcraft/internal/adapter/llm"
	"quizcraft/internal/adapter/quizgen"
	"quizcraft/internal/adapter/storage"
	"quizcraft/internal/cache"
	"quizcraft/internal/config"
	"quizcraft/internal/database"
	"quizcraft/internal/domain"
	"quizcraft/internal/handler"
	"quizcraft/internal/logger"
	"quizcraft/internal/metrics"
	"quizcraft/internal/middleware"
	"quizcraft/internal/repository"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	metrics.Init()

	ctx := context.Background()

	// Document store
	mongoClient, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		appLogger.Fatal("Failed to create indexes", zap.Error(err))
	}
	appLogger.Info("Connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	courseRepository := repository.NewCourseMongoRepository(db)
	materialRepository := repository.NewMaterialMongoRepository(db)
	generationRepository := repository.NewGenerationMongoRepository(db)

	// Summary cache; the service runs without it when Redis is unavailable.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, material summaries will not be cached", zap.Error(err))
	} else {
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}
	summaryCache := service.NewSummaryCacheService(cacheAdapter, cfg.CacheTTLs.MaterialSummary)

	// Object storage
	minioClient, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to create object storage client", zap.Error(err))
	}
	blobStore := storage.NewMinioBlobStore(minioClient, cfg.Storage)

	// Language model
	model, err := llm.NewModel(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	llmClient := llm.NewClient(model, cfg.LLM.Temperature)
	appLogger.Info("LLM client initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLM.Model))

	validator := validation.NewValidator()
	textExtractor := extractor.NewHTTPTextExtractor(&http.Client{Timeout: 60 * time.Second}, llmClient)
	questionGenerator := quizgen.NewLLMQuestionGenerator(llmClient, validator)
	summarizer := quizgen.NewLLMMaterialSummarizer(llmClient)
	grader := evaluator.NewLLMAnswerGrader(llmClient, validator)
	verifier := identity.NewJWTVerifier(cfg.Auth)

	courseService := service.NewCourseService(courseRepository, materialRepository, generationRepository, blobStore)
	materialService := service.NewMaterialService(courseRepository, materialRepository, textExtractor, summarizer, blobStore, summaryCache)
	quizService := service.NewQuizService(courseRepository, generationRepository, textExtractor, questionGenerator, grader, validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  30 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", metrics.Handler())

	handler.RegisterRoutes(app, handler.Handlers{
		Course:    handler.NewCourseHandler(courseService),
		Quiz:      handler.NewQuizHandler(materialService, quizService),
		Verifier:  verifier,
		Validator: validator,
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		appLogger.Error("Failed to disconnect from MongoDB", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
