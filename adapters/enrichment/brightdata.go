package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/internal/config"
	"github.com/hinderhq/hinder/pkg/logger"
)

// Failure reasons surfaced to the caller. The pipeline records an enrichment
// failure as a no-op; it never corrupts already-good profile content.
var (
	ErrInvalidInput     = errors.New("enrichment: invalid input")
	ErrSubmissionFailed = errors.New("enrichment: job submission failed")
	ErrPollFailed       = errors.New("enrichment: status poll failed")
	ErrJobFailed        = errors.New("enrichment: remote job failed")
	ErrTimeout          = errors.New("enrichment: polling exceeded max wait")
	ErrMalformedResult  = errors.New("enrichment: malformed result payload")
)

type jobState string

const (
	stateIdle      jobState = "idle"
	stateTriggered jobState = "triggered"
	statePolling   jobState = "polling"
	stateReady     jobState = "ready"
	stateFailed    jobState = "failed"
)

type brightDataAdapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	datasetID  string
	pollEvery  time.Duration
	maxWait    time.Duration
	log        logger.Logger
}

func NewBrightDataAdapter(cfg config.Config, log logger.Logger) (service.Enricher, error) {
	if cfg.BrightData.APIKey == "" {
		return nil, fmt.Errorf("brightdata API key is not configured")
	}

	log.Info("BrightData Enrichment Adapter initialized",
		zap.String("dataset_id", cfg.BrightData.DatasetID),
		zap.Duration("poll_every", cfg.BrightData.PollEvery))

	return &brightDataAdapter{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.BrightData.BaseURL, "/"),
		apiKey:     cfg.BrightData.APIKey,
		datasetID:  cfg.BrightData.DatasetID,
		pollEvery:  cfg.BrightData.PollEvery,
		maxWait:    cfg.BrightData.MaxWait,
		log:        log,
	}, nil
}

// Enrich drives one snapshot job through trigger, poll and fetch. It blocks
// between polls on the context, not a worker slot, and never polls past
// maxWait.
func (a *brightDataAdapter) Enrich(ctx context.Context, profileURL string) (*service.EnrichedProfile, error) {
	if err := ValidateProfileURL(profileURL); err != nil {
		return nil, err
	}

	state := stateIdle

	snapshotID, err := a.trigger(ctx, profileURL)
	if err != nil {
		return nil, err
	}
	state = stateTriggered
	a.log.Info("enrichment job triggered", zap.String("snapshot_id", snapshotID))

	deadline := time.Now().Add(a.maxWait)
	state = statePolling
	for state == statePolling {
		if time.Now().After(deadline) {
			return nil, ErrTimeout
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrPollFailed, ctx.Err())
		case <-time.After(a.pollEvery):
		}

		status, err := a.pollStatus(ctx, snapshotID)
		if err != nil {
			return nil, err
		}
		switch status {
		case "ready":
			state = stateReady
		case "failed", "error":
			state = stateFailed
		}
	}

	if state == stateFailed {
		return nil, ErrJobFailed
	}

	record, err := a.fetchResult(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	return buildEnrichedProfile(record), nil
}

// ValidateProfileURL rejects anything that is not a public linkedin.com
// profile URL. Callers run it before consuming a rate-limit slot; Enrich
// runs it again so the adapter never trusts its input.
func ValidateProfileURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrInvalidInput, raw)
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host != "linkedin.com" || !strings.HasPrefix(u.Path, "/in/") {
		return fmt.Errorf("%w: not a public profile URL", ErrInvalidInput)
	}
	return nil
}

func (a *brightDataAdapter) trigger(ctx context.Context, profileURL string) (string, error) {
	body, _ := json.Marshal([]map[string]string{{"url": profileURL}})

	endpoint := fmt.Sprintf("%s/datasets/v3/trigger?dataset_id=%s&format=json", a.baseURL, url.QueryEscape(a.datasetID))
	resp, err := a.doRequest(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrSubmissionFailed, resp.StatusCode)
	}

	var out struct {
		SnapshotID string `json:"snapshot_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.SnapshotID == "" {
		return "", fmt.Errorf("%w: missing snapshot_id", ErrSubmissionFailed)
	}
	return out.SnapshotID, nil
}

func (a *brightDataAdapter) pollStatus(ctx context.Context, snapshotID string) (string, error) {
	endpoint := fmt.Sprintf("%s/datasets/v3/progress/%s", a.baseURL, url.PathEscape(snapshotID))
	resp, err := a.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPollFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrPollFailed, resp.StatusCode)
	}

	var out struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPollFailed, err)
	}
	return out.Status, nil
}

func (a *brightDataAdapter) fetchResult(ctx context.Context, snapshotID string) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/datasets/v3/snapshot/%s?format=json", a.baseURL, url.PathEscape(snapshotID))
	resp, err := a.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrMalformedResult, resp.StatusCode)
	}

	var records []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	// Exactly one record per snapshot; anything else is an error, not a
	// silent truncation.
	if len(records) != 1 {
		return nil, fmt.Errorf("%w: expected 1 record, got %d", ErrMalformedResult, len(records))
	}
	return records[0], nil
}

func (a *brightDataAdapter) doRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.httpClient.Do(req)
}
