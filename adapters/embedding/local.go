package embedding

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/hinderhq/hinder/internal/application/service"
)

const (
	Dim       = 768
	maxTokens = 4000
)

// localAdapter produces deterministic embeddings without any external call:
// each whitespace token is hashed into one of Dim buckets and the counts are
// L2-normalized. Identical text always yields the identical vector.
type localAdapter struct{}

func NewLocalAdapter() service.EmbeddingService {
	return &localAdapter{}
}

func (a *localAdapter) GenerateEmbeddings(_ context.Context, text string) (pgvector.Vector, error) {
	vec := make([]float32, Dim)

	toks := strings.Fields(text)
	if len(toks) > maxTokens {
		toks = toks[:maxTokens]
	}
	for _, tok := range toks {
		vec[bucket(strings.ToLower(tok))]++
	}

	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq > 0 {
		norm := float32(math.Sqrt(sumSq))
		for i := range vec {
			vec[i] /= norm
		}
	}
	return pgvector.NewVector(vec), nil
}

func bucket(tok string) int {
	sum := md5.Sum([]byte(tok))
	return int(binary.BigEndian.Uint64(sum[8:]) % Dim)
}
