package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/config"
	"github.com/hinderhq/hinder/pkg/logger"
)

const (
	maxInputChars = 12000
	maxRetries    = 2
)

const systemPrompt = "You are a precise information extraction service. " +
	"Extract concise fields from the provided resume/profile text. " +
	"Return ONLY a strict JSON object with keys: name, headline, roles (title, org, start, end), " +
	"skills { tech: [], domain: [] }, interests, education, links. " +
	"Do not add any commentary. Keep arrays small and relevant."

type openAIExtractor struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

func NewOpenAIExtractor(cfg config.Config, log logger.Logger) (service.Extractor, error) {
	if cfg.Extraction.Host == "" {
		return nil, fmt.Errorf("extraction host is not configured")
	}

	clientCfg := openai.DefaultConfig(cfg.Extraction.APIKey)
	clientCfg.BaseURL = cfg.Extraction.Host

	log.Info("Extraction Adapter initialized",
		zap.String("host", cfg.Extraction.Host),
		zap.String("model", cfg.Extraction.Model))

	return &openAIExtractor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Extraction.Model,
		log:    log,
	}, nil
}

// Extract never surfaces model failures to the pipeline: after bounded
// retries it returns an empty ParseResult so processing can still finish.
func (e *openAIExtractor) Extract(ctx context.Context, rawText string) (*service.ParseResult, error) {
	text := truncate(rawText, maxInputChars)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err := e.callOnce(ctx, text)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	e.log.Warn("extraction degraded to empty result", zap.Error(lastErr))
	return emptyResult(), nil
}

func (e *openAIExtractor) callOnce(ctx context.Context, text string) (*service.ParseResult, error) {
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens: 1024,
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("extraction returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	raw = stripCodeFence(raw)

	var result service.ParseResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		e.log.Warn("extraction returned non-JSON payload", zap.Error(err))
		return emptyResult(), nil
	}
	return &result, nil
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func emptyResult() *service.ParseResult {
	return &service.ParseResult{
		Roles:     service.RoleList{},
		Interests: service.StringList{},
		Education: service.StringList{},
		Links:     service.StringList{},
		Skills: service.SkillBuckets{
			Tech:   service.StringList{},
			Domain: service.StringList{},
		},
	}
}
