package match

// Blend weights. Vector similarity dominates; keyword overlap is a
// tie-break and explainability signal.
const (
	vectorWeight  = 0.75
	keywordWeight = 0.25

	// neutralVectorScore is used when the index reports no distance.
	neutralVectorScore = 0.5
)

// Jaccard returns |A∩B| / |A∪B| over two label sets, 0 when both are empty.
func Jaccard(a, b []string) float64 {
	sa := toSet(a)
	sb := toSet(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 0
	}

	inter := 0
	for item := range sa {
		if _, ok := sb[item]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// VectorScore inverts a cosine distance into a similarity. A nil distance is
// "no signal" and maps to the neutral default, not to zero.
func VectorScore(distance *float64) float64 {
	if distance == nil {
		return neutralVectorScore
	}
	return 1.0 - *distance
}

func Blend(vectorScore, keywordScore float64) float64 {
	return vectorWeight*vectorScore + keywordWeight*keywordScore
}

// Overlap returns the items present in both sets, preserving a's order.
func Overlap(a, b []string) []string {
	sb := toSet(b)
	out := make([]string, 0)
	for _, item := range a {
		if _, ok := sb[item]; ok {
			out = append(out, item)
		}
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
