package debate

import (
	"slices"
	"sort"
)

// RankRebuttals orders candidates by priority descending, breaking ties on
// impact score descending. The sort is stable: candidates with equal keys
// keep their original relative order. The input slice is not modified.
func RankRebuttals(candidates []Rebuttal) []Rebuttal {
	ranked := slices.Clone(candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Priority != ranked[j].Priority {
			return ranked[i].Priority > ranked[j].Priority
		}
		return ranked[i].ImpactScore > ranked[j].ImpactScore
	})
	return ranked
}
