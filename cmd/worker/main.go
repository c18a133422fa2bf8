package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/hinderhq/hinder/adapters/embedding"
	"github.com/hinderhq/hinder/adapters/event"
	"github.com/hinderhq/hinder/adapters/extraction"
	"github.com/hinderhq/hinder/adapters/media_storage"
	"github.com/hinderhq/hinder/adapters/pdf"
	"github.com/hinderhq/hinder/adapters/persistence"
	"github.com/hinderhq/hinder/internal/application/service"
	profileUC "github.com/hinderhq/hinder/internal/application/usecase/profile"
	"github.com/hinderhq/hinder/internal/config"
	"github.com/hinderhq/hinder/pkg/logger"
	"github.com/hinderhq/hinder/pkg/progress"
)

func main() {
	fmt.Println("Starting Hinder Profile Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Database
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
	profileRepo := persistence.NewPostgresProfileRepo(dbPool)
	uploadRepo := persistence.NewPostgresUploadRepo(dbPool)
	vectorIndex := persistence.NewPgvectorIndex(dbPool)

	// Services
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

	// Progress events go out over Redis so the API process can forward them
	// to its SSE subscribers. The local bus here has no subscribers.
	publisher := event.NewRedisProgressPublisher(redisClient, progress.NewBus(), appLogger)

	processUseCase := profileUC.NewProcessProfileUseCase(
		profileRepo,
		uploadRepo,
		uploader,
		pdf.NewExtractor(),
		extractor,
		embedder,
		vectorIndex,
		publisher,
		appLogger,
	)

	// Kafka Consumer
	profileConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "profile-pipeline-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer profileConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicProfileEvents)

	ctx := context.Background()
	for {
		msg, err := profileConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload event.ProfileEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(profileConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for ProfileID: %s", payload.EventType, payload.ProfileID)

		if err := processUseCase.Execute(ctx, payload.ProfileID); err != nil {
			// A failed run already moved the profile to error status and
			// published the terminal event; committing avoids a redelivery
			// loop on a permanently broken profile.
			log.Printf("ERROR: Pipeline failed for ProfileID %s: %v", payload.ProfileID, err)
		}

		commitMessage(profileConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
