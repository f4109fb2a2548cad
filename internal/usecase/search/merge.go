package search

import (
	"math"
	"sort"

	"github.com/arthaset/fundex/internal/domain/search/options"
	"github.com/arthaset/fundex/internal/domain/search/result"
)

// Boost parameters: AUM saturates at 1e10 for a 30% lift, popularity at 1000
// for a 20% lift. Both lifts are additive into a single multiplier.
const (
	aumBoostScale = 1e10
	aumBoostCap   = 0.3

	popularityBoostScale = 1000
	popularityBoostCap   = 0.2
)

// mergeResults deduplicates candidates by scheme code keeping the highest
// score, applies AUM/popularity boosting when requested, sorts descending by
// final score, and truncates to the option limit. Pure with respect to layer
// ordering.
func mergeResults(candidates []result.Result, opts options.Options) []result.Result {
	merged := dedupeKeepMax(candidates)

	if opts.BoostPopular() {
		for i := range merged {
			factor := boostFactor(merged[i].AUM(), merged[i].Popularity())
			merged[i] = merged[i].WithScore(merged[i].Score() * factor)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score() > merged[j].Score()
	})

	if len(merged) > opts.Limit() {
		merged = merged[:opts.Limit()]
	}
	return merged
}

// dedupeKeepMax keeps, per scheme code, the candidate with the higher score.
// First-seen order is preserved for surviving entries.
func dedupeKeepMax(candidates []result.Result) []result.Result {
	index := make(map[string]int, len(candidates))
	merged := make([]result.Result, 0, len(candidates))

	for _, c := range candidates {
		if at, seen := index[c.SchemeCode()]; seen {
			if c.Score() > merged[at].Score() {
				merged[at] = c
			}
			continue
		}
		index[c.SchemeCode()] = len(merged)
		merged = append(merged, c)
	}
	return merged
}

// boostFactor is monotonic in both inputs: growing a fund never shrinks its
// post-boost score.
func boostFactor(aum, popularity float64) float64 {
	aumBoost := math.Min(aum/aumBoostScale, 1) * aumBoostCap
	popBoost := math.Min(popularity/popularityBoostScale, 1) * popularityBoostCap
	return 1 + aumBoost + popBoost
}
