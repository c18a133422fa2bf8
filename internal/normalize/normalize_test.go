package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "lowercases and trims",
			in:   []string{"  Python ", "RUST"},
			want: []string{"python", "rust"},
		},
		{
			name: "folds aliases",
			in:   []string{"LLMs", "React.js", "k8s"},
			want: []string{"llm", "react", "kubernetes"},
		},
		{
			name: "drops case-variant duplicates, keeps first-seen order",
			in:   []string{"Go", "golang", "python", "GO"},
			want: []string{"go", "python"},
		},
		{
			name: "discards empties",
			in:   []string{"", "  ", "sql"},
			want: []string{"sql"},
		},
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, List(tt.in))
		})
	}
}

func TestUnion(t *testing.T) {
	got := Union([]string{"python", "rag"}, []string{"RAG", "PyTorch"})
	assert.Equal(t, []string{"python", "rag", "pytorch"}, got)
}
