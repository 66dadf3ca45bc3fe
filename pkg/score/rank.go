package score

import "sort"

// Rank orders scores by total, highest first. Equal totals keep their input
// order, which makes zero-score ties deterministic. Nothing is filtered.
func Rank(scores []WorkflowScore) []WorkflowScore {
	out := make([]WorkflowScore, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// Recommended returns the recommended entries of a ranked list, in order.
func Recommended(ranked []WorkflowScore) []WorkflowScore {
	var out []WorkflowScore
	for _, s := range ranked {
		if s.Recommended {
			out = append(out, s)
		}
	}
	return out
}
