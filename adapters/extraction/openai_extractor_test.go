package extraction

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short input untouched", "héllo", 100, "héllo"},
		{"ascii cut", "abcdef", 3, "abc"},
		{"multibyte rune not split", strings.Repeat("a", 3) + "é", 4, "aaa"},
		{"cut lands on rune start", "aé" + "b", 3, "aé"},
		{"all multibyte", strings.Repeat("é", 5), 5, "éé"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := truncate(tc.in, tc.max)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, len(got), tc.max)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"name":"Ada"}`, stripCodeFence("```json\n{\"name\":\"Ada\"}\n```"))
	assert.Equal(t, `{"name":"Ada"}`, stripCodeFence(`{"name":"Ada"}`))
}
