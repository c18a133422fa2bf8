package enrichment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hinderhq/hinder/pkg/logger"
)

const testProfileURL = "https://www.linkedin.com/in/ada-lovelace"

func newTestAdapter(serverURL string) *brightDataAdapter {
	return &brightDataAdapter{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    serverURL,
		apiKey:     "test-key",
		datasetID:  "gd_test",
		pollEvery:  time.Millisecond,
		maxWait:    50 * time.Millisecond,
		log:        logger.NewNop(),
	}
}

func TestValidateProfileURL(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid", testProfileURL, false},
		{"valid without www", "https://linkedin.com/in/someone", false},
		{"wrong host", "https://example.com/in/someone", true},
		{"wrong path", "https://www.linkedin.com/company/acme", true},
		{"plain http", "http://www.linkedin.com/in/someone", true},
		{"garbage", "not a url", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProfileURL(tc.url)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnrich_HappyPath(t *testing.T) {
	var polls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/datasets/v3/trigger":
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]string{"snapshot_id": "snap-1"})
		case r.URL.Path == "/datasets/v3/progress/snap-1":
			status := "running"
			if polls.Add(1) >= 2 {
				status = "ready"
			}
			json.NewEncoder(w).Encode(map[string]string{"status": status})
		case r.URL.Path == "/datasets/v3/snapshot/snap-1":
			json.NewEncoder(w).Encode([]map[string]any{{
				"name":            "Ada Lovelace",
				"position":        "Staff Engineer",
				"current_company": map[string]any{"name": "Analytical Engines"},
				"education":       []any{map[string]any{"title": "Cambridge"}},
				"skills":          []any{"mathematics", "compilers"},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	enriched, err := adapter.Enrich(context.Background(), testProfileURL)

	assert.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", enriched.Name)
	assert.Equal(t, "Staff Engineer", enriched.Headline)
	assert.Equal(t, "Analytical Engines", enriched.Company)
	assert.Equal(t, "Cambridge", enriched.School)
	assert.Equal(t, []string{"mathematics", "compilers"}, enriched.Skills)
	assert.GreaterOrEqual(t, polls.Load(), int32(2))
}

func TestEnrich_PerpetualInProgressTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/datasets/v3/trigger" {
			json.NewEncoder(w).Encode(map[string]string{"snapshot_id": "snap-1"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "running"})
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	adapter.maxWait = 20 * time.Millisecond

	_, err := adapter.Enrich(context.Background(), testProfileURL)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestEnrich_RemoteJobFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/datasets/v3/trigger" {
			json.NewEncoder(w).Encode(map[string]string{"snapshot_id": "snap-1"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "failed"})
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Enrich(context.Background(), testProfileURL)
	assert.ErrorIs(t, err, ErrJobFailed)
}

func TestEnrich_SubmissionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Enrich(context.Background(), testProfileURL)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
}

func TestEnrich_MultipleRecordsIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/datasets/v3/trigger":
			json.NewEncoder(w).Encode(map[string]string{"snapshot_id": "snap-1"})
		case r.URL.Path == "/datasets/v3/progress/snap-1":
			json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		default:
			json.NewEncoder(w).Encode([]map[string]any{{"name": "A"}, {"name": "B"}})
		}
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Enrich(context.Background(), testProfileURL)
	assert.ErrorIs(t, err, ErrMalformedResult)
}

func TestRecordAccessorsAreTotal(t *testing.T) {
	record := map[string]any{
		"name":      42,
		"education": "not a list",
	}

	assert.Equal(t, "", recordName(record))
	assert.Equal(t, "", recordLocation(record))
	assert.Equal(t, "", recordCurrentRole(record))
	assert.Equal(t, "", recordCurrentCompany(record))
	assert.Empty(t, recordExperience(record))
	assert.Empty(t, recordEducation(record))

	enriched := buildEnrichedProfile(record)
	assert.Equal(t, "", enriched.Name)
	assert.Empty(t, enriched.Skills)
}
