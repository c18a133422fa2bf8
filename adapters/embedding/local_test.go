package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalAdapter_Deterministic(t *testing.T) {
	adapter := NewLocalAdapter()

	a, err := adapter.GenerateEmbeddings(context.Background(), "go engineer in berlin")
	assert.NoError(t, err)
	b, err := adapter.GenerateEmbeddings(context.Background(), "go engineer in berlin")
	assert.NoError(t, err)

	assert.Equal(t, a.Slice(), b.Slice())
	assert.Len(t, a.Slice(), Dim)
}

func TestLocalAdapter_UnitNorm(t *testing.T) {
	adapter := NewLocalAdapter()

	vec, err := adapter.GenerateEmbeddings(context.Background(), "rust kubernetes postgres rust")
	assert.NoError(t, err)

	var sumSq float64
	for _, v := range vec.Slice() {
		sumSq += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-5)
}

func TestLocalAdapter_EmptyText(t *testing.T) {
	adapter := NewLocalAdapter()

	vec, err := adapter.GenerateEmbeddings(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Len(t, vec.Slice(), Dim)
	for _, v := range vec.Slice() {
		assert.Zero(t, v)
	}
}

func TestLocalAdapter_DistinctTextsDiffer(t *testing.T) {
	adapter := NewLocalAdapter()

	a, _ := adapter.GenerateEmbeddings(context.Background(), "frontend react designer")
	b, _ := adapter.GenerateEmbeddings(context.Background(), "database internals hacker")

	assert.NotEqual(t, a.Slice(), b.Slice())
}
