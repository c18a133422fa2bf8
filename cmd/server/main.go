package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/adapters/embedding"
	"github.com/hinderhq/hinder/adapters/enrichment"
	"github.com/hinderhq/hinder/adapters/event"
	"github.com/hinderhq/hinder/adapters/extraction"
	httpAdapter "github.com/hinderhq/hinder/adapters/http"
	"github.com/hinderhq/hinder/adapters/media_storage"
	"github.com/hinderhq/hinder/adapters/pdf"
	"github.com/hinderhq/hinder/adapters/persistence"
	"github.com/hinderhq/hinder/internal/application/service"
	adminUC "github.com/hinderhq/hinder/internal/application/usecase/admin"
	authUC "github.com/hinderhq/hinder/internal/application/usecase/auth"
	enrichUC "github.com/hinderhq/hinder/internal/application/usecase/enrich"
	matchUC "github.com/hinderhq/hinder/internal/application/usecase/match"
	profileUC "github.com/hinderhq/hinder/internal/application/usecase/profile"
	searchUC "github.com/hinderhq/hinder/internal/application/usecase/search"
	uploadUC "github.com/hinderhq/hinder/internal/application/usecase/upload"
	"github.com/hinderhq/hinder/internal/config"
	"github.com/hinderhq/hinder/pkg/auth"
	"github.com/hinderhq/hinder/pkg/logger"
	"github.com/hinderhq/hinder/pkg/progress"
	"github.com/hinderhq/hinder/pkg/tracing"
)

func main() {
	fmt.Println("Starting Hinder API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "hinder-api")
	if err != nil {
		log.Fatalf("FATAL: cannot init tracing: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool)
	uploadRepo := persistence.NewPostgresUploadRepo(dbPool)
	matchLogRepo := persistence.NewPostgresMatchLogRepo(dbPool)
	introRepo := persistence.NewPostgresIntroRepo(dbPool)
	vectorIndex := persistence.NewPgvectorIndex(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot initialize uploader: %v", err)
	}

	var embedder service.EmbeddingService
	if cfg.Embeddings.Provider == "openai" {
		embedder, err = embedding.NewOpenAIAdapter(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot initialize embedder: %v", err)
		}
	} else {
		embedder = embedding.NewLocalAdapter()
	}

	extractor, err := extraction.NewOpenAIExtractor(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot initialize extractor: %v", err)
	}

	var enricher service.Enricher
	if cfg.BrightData.Enabled {
		enricher, err = enrichment.NewBrightDataAdapter(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot initialize enricher: %v", err)
		}
	} else {
		enricher = enrichment.NewDisabledEnricher()
	}

	textExtractor := pdf.NewExtractor()

	// Progress fan-out: pipeline stages publish here, SSE clients subscribe.
	bus := progress.NewBus()
	publisher := event.NewRedisProgressPublisher(redisClient, bus, appLogger)

	processUseCase := profileUC.NewProcessProfileUseCase(
		profileRepo,
		uploadRepo,
		uploader,
		textExtractor,
		extractor,
		embedder,
		vectorIndex,
		publisher,
		appLogger,
	)

	// With Kafka brokers configured the pipeline runs in the worker binary;
	// without them it runs in-process behind the same runner interface.
	var runner service.PipelineRunner
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg)
		if err != nil {
			log.Fatalf("FATAL: cannot init Kafka: %v", err)
		}
		defer kafkaClient.Close()
		runner = event.NewKafkaRunner(kafkaClient)
		event.StartProgressForwarder(context.Background(), redisClient, bus, appLogger)
	} else {
		runner = profileUC.NewLocalRunner(processUseCase, appLogger)
	}

	// Use Cases
	signupUseCase := authUC.NewSignupUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	getMeUseCase := authUC.NewGetMeUseCase(userRepo)

	uploadResumeUseCase := uploadUC.NewUploadResumeUseCase(uploadRepo, uploader, appLogger)

	createProfileUseCase := profileUC.NewCreateProfileUseCase(profileRepo, runner, appLogger)
	getProfileUseCase := profileUC.NewGetProfileUseCase(profileRepo)
	updateProfileUseCase := profileUC.NewUpdateProfileUseCase(profileRepo, runner)
	deleteProfileUseCase := profileUC.NewDeleteProfileUseCase(profileRepo, uploadRepo, uploader, vectorIndex, appLogger)
	reprocessProfileUseCase := profileUC.NewReprocessProfileUseCase(profileRepo, runner)

	icebreakers := matchUC.NewIcebreakers()
	getMatchesUseCase := matchUC.NewGetMatchesUseCase(profileRepo, embedder, vectorIndex, matchLogRepo, icebreakers, appLogger)
	submitFeedbackUseCase := matchUC.NewSubmitFeedbackUseCase(matchLogRepo)
	requestIntroUseCase := matchUC.NewRequestIntroUseCase(profileRepo, introRepo, icebreakers)

	enrichProfileUseCase := enrichUC.NewEnrichProfileUseCase(profileRepo, enricher, runner, redisClient, appLogger)
	searchProfilesUseCase := searchUC.NewSearchProfilesUseCase(profileRepo, embedder, vectorIndex, appLogger)

	getStatsUseCase := adminUC.NewGetStatsUseCase(profileRepo, matchLogRepo)
	seedProfilesUseCase := adminUC.NewSeedProfilesUseCase(profileRepo, embedder, vectorIndex, appLogger)
	clearFeedbackUseCase := adminUC.NewClearFeedbackUseCase(matchLogRepo)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(signupUseCase, loginUseCase, getMeUseCase)
	uploadHandler := httpAdapter.NewUploadHandler(uploadResumeUseCase)
	profileHandler := httpAdapter.NewProfileHandler(
		createProfileUseCase,
		getProfileUseCase,
		updateProfileUseCase,
		deleteProfileUseCase,
		reprocessProfileUseCase,
	)
	statusHandler := httpAdapter.NewStatusHandler(getProfileUseCase, bus)
	matchHandler := httpAdapter.NewMatchHandler(getMatchesUseCase, submitFeedbackUseCase, requestIntroUseCase)
	enrichHandler := httpAdapter.NewEnrichHandler(enrichProfileUseCase)
	searchHandler := httpAdapter.NewSearchHandler(searchProfilesUseCase)
	adminHandler := httpAdapter.NewAdminHandler(getStatsUseCase, seedProfilesUseCase, clearFeedbackUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	// Setup Gin router
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
		}

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.GET("/auth/me", authHandler.Me)

			private.POST("/uploads", uploadHandler.UploadResume)

			profiles := private.Group("/profiles")
			{
				profiles.POST("", profileHandler.Create)
				profiles.GET("/:id", profileHandler.Get)
				profiles.PATCH("/:id", profileHandler.Update)
				profiles.DELETE("/:id", profileHandler.Delete)
				profiles.POST("/:id/reprocess", profileHandler.Reprocess)
			}

			private.GET("/status", statusHandler.Get)
			private.GET("/status/stream", statusHandler.Stream)

			private.GET("/matches", matchHandler.GetMatches)
			private.POST("/feedback", matchHandler.SubmitFeedback)
			private.POST("/intro", matchHandler.RequestIntro)
			private.POST("/enrich", enrichHandler.Enrich)
			private.GET("/search", searchHandler.Search)

			admin := private.Group("/admin")
			{
				admin.GET("/stats", adminHandler.Stats)
				admin.POST("/seed", adminHandler.Seed)
				admin.POST("/clear", adminHandler.ClearFeedback)
			}
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
