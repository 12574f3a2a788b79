package matching

import "sort"

// DefaultTopN is how many donors a run notifies.
const DefaultTopN = 10

// Rank orders candidates by score, highest first, keeping input order for equal
// scores, and returns at most limit of them. A non-positive limit means DefaultTopN.
// The input slice is not modified.
func Rank(candidates []ScoredCandidate, limit int) []ScoredCandidate {
	if limit <= 0 {
		limit = DefaultTopN
	}
	out := make([]ScoredCandidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
