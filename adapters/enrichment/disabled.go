package enrichment

import (
	"context"
	"errors"

	"github.com/hinderhq/hinder/internal/application/service"
)

var ErrDisabled = errors.New("enrichment: disabled by configuration")

type disabledEnricher struct{}

// NewDisabledEnricher is used when no scraping credentials are configured;
// every call fails fast and the caller records the enrichment as a no-op.
func NewDisabledEnricher() service.Enricher {
	return &disabledEnricher{}
}

func (disabledEnricher) Enrich(context.Context, string) (*service.EnrichedProfile, error) {
	return nil, ErrDisabled
}
