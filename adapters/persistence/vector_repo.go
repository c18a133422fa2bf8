package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/hinderhq/hinder/internal/application/service"
	"github.com/hinderhq/hinder/pkg/apperror"
)

type pgvectorIndex struct {
	db *pgxpool.Pool
}

// NewPgvectorIndex stores profile vectors in the profile_vectors table and
// ranks queries by cosine distance.
func NewPgvectorIndex(db *pgxpool.Pool) service.VectorIndex {
	return &pgvectorIndex{db: db}
}

func (r *pgvectorIndex) Upsert(ctx context.Context, id uuid.UUID, vec pgvector.Vector, metadata map[string]any) error {
	metaBytes, err := json.Marshal(flattenMetadata(metadata))
	if err != nil {
		return apperror.NewInternal("failed to marshal vector metadata", err)
	}

	query := `
		INSERT INTO profile_vectors (id, embedding, metadata, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, id, vec, metaBytes); err != nil {
		return apperror.NewInternal("failed to upsert vector", err)
	}
	return nil
}

func (r *pgvectorIndex) Query(ctx context.Context, vec pgvector.Vector, k int, filters map[string]any) ([]service.CandidateMatch, error) {
	builder := psql.Select("id", "metadata", "embedding <=> ? AS distance").
		From("profile_vectors").
		OrderBy("distance ASC").
		Limit(uint64(k))

	for key, value := range filters {
		builder = builder.Where(sq.Expr("metadata->>? = ?", key, fmt.Sprint(value)))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build vector query", err)
	}
	// The select-list placeholder is numbered first, so the vector binds
	// ahead of the filter arguments.
	args = append([]any{vec}, args...)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query vectors", err)
	}
	defer rows.Close()

	matches := make([]service.CandidateMatch, 0, k)
	for rows.Next() {
		var m service.CandidateMatch
		var metaBytes []byte
		var distance float64
		if err := rows.Scan(&m.ID, &metaBytes, &distance); err != nil {
			return nil, apperror.NewInternal("failed to scan vector row", err)
		}
		m.Distance = &distance
		if len(metaBytes) > 0 {
			if err := json.Unmarshal(metaBytes, &m.Metadata); err != nil {
				m.Metadata = map[string]any{}
			}
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating vector rows", err)
	}
	return matches, nil
}

func (r *pgvectorIndex) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM profile_vectors WHERE id = $1`, id); err != nil {
		return apperror.NewInternal("failed to delete vector", err)
	}
	return nil
}

// flattenMetadata keeps primitive values as-is and serializes anything
// composite to a JSON string, so the stored metadata is always flat.
func flattenMetadata(metadata map[string]any) map[string]any {
	out := make(map[string]any, len(metadata))
	for key, value := range metadata {
		switch value.(type) {
		case nil, string, bool,
			int, int32, int64, float32, float64:
			out[key] = value
		default:
			if b, err := json.Marshal(value); err == nil {
				out[key] = string(b)
			}
		}
	}
	return out
}
