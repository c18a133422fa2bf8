package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     []string
		expected float64
	}{
		{"partial overlap", []string{"a", "b", "c"}, []string{"b", "c", "d"}, 0.5},
		{"both empty", nil, nil, 0},
		{"one empty", []string{"a"}, nil, 0},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1},
		{"disjoint", []string{"a"}, []string{"b"}, 0},
		{"duplicates collapse", []string{"a", "a", "b"}, []string{"a"}, 0.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Jaccard(tc.a, tc.b), 1e-9)
		})
	}
}

func TestBlend(t *testing.T) {
	assert.InDelta(t, 0.725, Blend(0.8, 0.5), 1e-9)
	assert.InDelta(t, 0, Blend(0, 0), 1e-9)
	assert.InDelta(t, 1, Blend(1, 1), 1e-9)
}

func TestVectorScore(t *testing.T) {
	distance := 0.2
	assert.InDelta(t, 0.8, VectorScore(&distance), 1e-9)
	assert.InDelta(t, 0.5, VectorScore(nil), 1e-9)
}

func TestOverlap(t *testing.T) {
	assert.Equal(t, []string{"b", "c"}, Overlap([]string{"a", "b", "c"}, []string{"c", "b"}))
	assert.Empty(t, Overlap([]string{"a"}, []string{"b"}))
}
