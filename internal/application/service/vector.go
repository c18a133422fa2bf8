package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// CandidateMatch is one nearest-neighbor hit. Distance is nil when the index
// cannot report one; callers must treat that as "no signal", not zero.
type CandidateMatch struct {
	ID       uuid.UUID
	Distance *float64
	Metadata map[string]any
}

// VectorIndex is the opaque nearest-neighbor store. Metadata values must be
// primitives (string, number, bool, nil); composite values are serialized to
// strings before storage.
type VectorIndex interface {
	Upsert(ctx context.Context, id uuid.UUID, vec pgvector.Vector, metadata map[string]any) error
	Query(ctx context.Context, vec pgvector.Vector, k int, filters map[string]any) ([]CandidateMatch, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
