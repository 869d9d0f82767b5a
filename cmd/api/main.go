package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Wajihx/News-Article-Classifier/internal/adapter/extract"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/feed"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/http/router"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/onnx"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/repository/filesystem"
	"github.com/Wajihx/News-Article-Classifier/internal/adapter/repository/postgres"
	"github.com/Wajihx/News-Article-Classifier/internal/inference"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/cache"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/config"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/database"
	"github.com/Wajihx/News-Article-Classifier/internal/infrastructure/logger"
	"github.com/Wajihx/News-Article-Classifier/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Load the checkpoint once; nothing is served without it
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	predictor, err := inference.LoadCheckpoint(loadCtx, &cfg.Model)
	cancelLoad()
	if err != nil {
		log.Error("Failed to load model", zap.String("checkpoint_dir", cfg.Model.CheckpointDir), zap.Error(err))
		return fmt.Errorf("failed to load model: %w", err)
	}
	defer func() {
		if err := predictor.Close(); err != nil {
			log.Warn("Failed to release model", zap.Error(err))
		}
		if cfg.Model.Backend == config.BackendONNX {
			_ = onnx.Shutdown()
		}
	}()
	log.Info("Model loaded",
		zap.String("model_version", predictor.ModelVersion()),
		zap.String("backend", cfg.Model.Backend),
		zap.Int("word_budget", predictor.WordBudget()))

	// Initialize database (optional, continue without history)
	db := openDatabase(cfg, log)
	defer func() {
		if db != nil {
			_ = database.Close(db)
		}
	}()

	// Initialize Redis (optional, continue without cache)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
			defer func() { _ = redisClient.Close() }()
		}
	}

	extractors := extract.NewRegistry()
	deps := usecase.ClassifyDeps{
		Classifier: predictor,
		Extractors: extractors,
		Samples:    filesystem.NewSampleRepository(cfg.Samples.Dir, nil),
		Feeds:      feed.NewReader(cfg.Feed.Timeout, extract.NewHTMLExtractor()),
		Logger:     log,
		FeedItems:  cfg.Feed.MaxItems,
	}
	if db != nil {
		deps.History = postgres.NewClassificationRepository(db)
	}
	if redisClient != nil {
		deps.Cache = cache.NewPredictionCache(redisClient, cfg.Redis.TTL)
	}
	classifyUC := usecase.NewClassifyUsecase(deps)

	// Setup router
	r := router.Setup(router.Deps{
		Classify:       classifyUC,
		DB:             db,
		Redis:          redisClient,
		Logger:         log,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

// openDatabase connects and migrates the history database, returning nil when
// history is disabled or unreachable
func openDatabase(cfg *config.Config, log *zap.Logger) *gorm.DB {
	if !cfg.Database.Enabled {
		log.Info("Classification history disabled")
		return nil
	}

	db, err := database.NewPostgresDB(&cfg.Database, database.GormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Warn("Failed to connect to database, continuing without history", zap.Error(err))
		return nil
	}
	log.Info("Connected to database")

	if err := database.AutoMigrate(db); err != nil {
		log.Warn("Failed to run migrations, continuing without history", zap.Error(err))
		_ = database.Close(db)
		return nil
	}
	log.Info("Database migrations completed")

	return db
}
