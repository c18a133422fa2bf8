package service

import (
	"context"

	"github.com/google/uuid"
)

// PipelineRunner schedules the processing pipeline for a profile. Enqueue
// returns once the run is accepted; the returned channel receives the run's
// terminal error (nil on success) and is then closed. Runs for the same
// profile ID never overlap.
type PipelineRunner interface {
	Enqueue(ctx context.Context, profileID uuid.UUID) (<-chan error, error)
}
