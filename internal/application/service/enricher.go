package service

import "context"

// EnrichedProfile is the subset of a scraped public profile the pipeline
// merges into a local profile. Zero-value fields mean "nothing found" and
// never overwrite existing data.
type EnrichedProfile struct {
	Name      string
	Headline  string
	Company   string
	School    string
	Skills    []string
	Interests []string
}

// Enricher fetches public-profile data for a URL via a long-running external
// job. Enrich blocks until the job finishes, fails, or ctx is done.
type Enricher interface {
	Enrich(ctx context.Context, profileURL string) (*EnrichedProfile, error)
}
