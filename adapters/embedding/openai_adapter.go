package embedding

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/config"
	"github.com/hinderhq/hinder/pkg/logger"
)

type openAIAdapter struct {
	client   *openai.Client
	model    string
	fallback service.EmbeddingService
	log      logger.Logger
}

// NewOpenAIAdapter builds an embedding service backed by an OpenAI-compatible
// endpoint. When the remote call fails it degrades to the local deterministic
// adapter so the pipeline never stalls on an embeddings outage.
func NewOpenAIAdapter(cfg config.Config, log logger.Logger) (service.EmbeddingService, error) {
	if cfg.Embeddings.Host == "" {
		return nil, fmt.Errorf("embeddings host is not configured")
	}

	clientCfg := openai.DefaultConfig(cfg.Embeddings.APIKey)
	clientCfg.BaseURL = cfg.Embeddings.Host

	log.Info("OpenAI Embedding Adapter initialized",
		zap.String("host", cfg.Embeddings.Host),
		zap.String("model", cfg.Embeddings.Model))

	return &openAIAdapter{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Embeddings.Model,
		fallback: NewLocalAdapter(),
		log:      log,
	}, nil
}

func (a *openAIAdapter) GenerateEmbeddings(ctx context.Context, text string) (pgvector.Vector, error) {
	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(a.model),
	}

	resp, err := a.client.CreateEmbeddings(ctx, req)
	if err != nil {
		a.log.Warn("embedding request failed, using local fallback", zap.Error(err))
		return a.fallback.GenerateEmbeddings(ctx, text)
	}
	if len(resp.Data) == 0 {
		a.log.Warn("embedding provider returned no vectors, using local fallback")
		return a.fallback.GenerateEmbeddings(ctx, text)
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}
