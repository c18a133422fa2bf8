// Package normalize canonicalizes short free-text labels (skills, topics) so
// that case variants and common aliases collapse to one spelling before they
// are stored, indexed or compared.
package normalize

import "strings"

var aliases = map[string]string{
	"llms":       "llm",
	"react.js":   "react",
	"reactjs":    "react",
	"node.js":    "nodejs",
	"golang":     "go",
	"k8s":        "kubernetes",
	"postgresql": "postgres",
}

func one(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// List folds every label and drops duplicates while preserving first-seen
// order. Empty labels are discarded.
func List(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, x := range items {
		n := one(x)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Union merges two already-normalized (or raw) lists into one normalized set,
// keeping the order of a's entries ahead of b's.
func Union(a, b []string) []string {
	merged := make([]string, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return List(merged)
}
