package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/exercise-discovery/internal/ai"
	"alcyxob/exercise-discovery/internal/api"
	"alcyxob/exercise-discovery/internal/config"
	"alcyxob/exercise-discovery/internal/discovery"
	"alcyxob/exercise-discovery/internal/logger"
	"alcyxob/exercise-discovery/internal/repository/mongo"
	"alcyxob/exercise-discovery/internal/retry"
	"alcyxob/exercise-discovery/internal/service"
	"alcyxob/exercise-discovery/internal/storage"
	"alcyxob/exercise-discovery/internal/taxonomy"
	"alcyxob/exercise-discovery/internal/video"

	"github.com/gin-gonic/gin"
)

// @title Exercise Discovery API
// @version 1.0
// @description Discovers, scores and deduplicates candidate exercises for coach review.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer appLog.Sync()
	appLog.Info("Starting Exercise Discovery Server...",
		"address", cfg.Server.Address,
		"ai_provider", cfg.AI.Provider,
		"log_mode", cfg.Log.Mode,
	)

	if cfg.JWT.Secret == "" {
		appLog.Fatal("jwt.secret is required")
	}

	ctx := context.Background()

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		appLog.Fatal("Could not connect to MongoDB", "error", err)
	}
	defer func() {
		appLog.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			appLog.Error("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	appLog.Info("Database connection established.", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			appLog.Error("Index creation failed", "error", err)
			return
		}
		appLog.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	var reports storage.ReportStore
	reports, err = storage.NewS3Storage(ctx, cfg.S3, appLog)
	if errors.Is(err, storage.ErrStorageDisabled) {
		appLog.Warn("S3 bucket not configured, report export disabled")
		reports = nil
	} else if err != nil {
		appLog.Fatal("Failed to initialize S3 storage", "error", err)
	}

	// --- Initialize Repositories ---
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)

	// --- Discovery Pipeline ---
	tax, err := taxonomy.Load(cfg.Discovery.TaxonomyPath)
	if err != nil {
		appLog.Fatal("Could not load taxonomy", "path", cfg.Discovery.TaxonomyPath, "error", err)
	}
	provider, err := ai.NewFromConfig(cfg)
	if err != nil {
		appLog.Fatal("Could not configure AI provider", "error", err)
	}
	retryPolicy := retry.Policy{MaxRetries: cfg.Discovery.RetryMax, Backoff: cfg.Discovery.RetryBackoff}

	enricher := discovery.NewEnricher(provider, tax, discovery.EnricherConfig{
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Retry:       retryPolicy,
	}, appLog.With("component", "enricher"))

	// --- Video Lookup ---
	var searcher video.Searcher
	if cfg.YouTube.APIKey != "" {
		searcher, err = video.NewYouTubeSearcher(ctx, cfg.YouTube.APIKey)
		if err != nil {
			appLog.Fatal("Could not create YouTube client", "error", err)
		}
	}
	var cache video.Cache
	cache, err = video.NewRedisCache(ctx, cfg.Redis, appLog)
	if errors.Is(err, video.ErrCacheDisabled) {
		cache = nil
	} else if err != nil {
		appLog.Warn("Redis unavailable, video lookups will not be cached", "addr", cfg.Redis.Addr, "error", err)
		cache = nil
	}
	videos := video.NewService(searcher, cache, video.Config{
		MaxResults: cfg.YouTube.MaxResults,
		CacheTTL:   cfg.Redis.VideoTTL,
		Retry:      retryPolicy,
	}, appLog.With("component", "video"))

	// --- Initialize Services ---
	exerciseService := service.NewExerciseService(exerciseRepo, videos, appLog.With("component", "exercises"))
	orchestrator := discovery.NewOrchestrator(enricher, tax, sessionRepo, exerciseService, discovery.OrchestratorConfig{
		InterCallDelay:      cfg.Discovery.InterCallDelay,
		TestModeMaxTerms:    cfg.Discovery.TestModeMaxTerms,
		ReviewGrace:         cfg.Discovery.ReviewGrace,
		QualityThreshold:    cfg.Discovery.QualityThreshold,
		ImportantRelevance:  cfg.Discovery.ImportantRelevance,
		MaxExercisesPerTerm: cfg.Discovery.MaxExercisesPerTerm,
		BatchSize:           cfg.Discovery.BatchSize,
	}, appLog.With("component", "orchestrator"))
	discoveryService := service.NewDiscoveryService(orchestrator, sessionRepo, reports, service.DiscoveryServiceConfig{
		InterCallDelay:  cfg.Discovery.InterCallDelay,
		ReportURLExpiry: cfg.Discovery.ReportURLExpiry,
	}, appLog.With("component", "discovery"))

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, api.Deps{
		JWTSecret:        cfg.JWT.Secret,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		Log:              appLog.With("component", "http"),
		DiscoveryService: discoveryService,
		ExerciseService:  exerciseService,
		Videos:           videos,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLog.Info("Server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("ListenAndServe Error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	if id := orchestrator.Active(); id != "" {
		appLog.Warn("Discovery session still running at shutdown, cancelling", "session_id", id)
		_ = orchestrator.Cancel(id)
		waitCtx, cancelWait := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := orchestrator.Wait(waitCtx, id); err != nil {
			appLog.Warn("Discovery session did not stop in time", "session_id", id, "error", err)
		}
		cancelWait()
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		appLog.Error("Server forced to shutdown", "error", err)
	}

	appLog.Info("Server exiting.")
}
