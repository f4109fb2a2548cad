package search

import (
	"sort"
	"strings"

	"github.com/arthaset/fundex/internal/domain/search/result"
)

// Emphasis markers wrapped around matched substrings in highlighted names.
const (
	highlightOpen  = "<em>"
	highlightClose = "</em>"
)

// Confidence weights. The sum is capped at 1.0.
const (
	confNamePrefix  = 0.5
	confHousePrefix = 0.4
	confTokenCover  = 0.3
	confTokenOrder  = 0.1

	confPopularityHigh   = 0.05
	confPopularityMid    = 0.03
	popularityHighCutoff = 800.0
	popularityMidCutoff  = 300.0

	confAUMHigh   = 0.05
	confAUMMid    = 0.02
	aumHighCutoff = 1e10
	aumMidCutoff  = 1e9
)

// scoreConfidence estimates (0-1) how well a candidate matches the typed
// prefix: exact-prefix match on name or house, input-token coverage, token
// order for two-token queries, and popularity/AUM tiers.
func scoreConfidence(r *result.Result, normalized string, tokens []string) float64 {
	name := strings.ToLower(r.Name())
	house := strings.ToLower(r.FundHouse())

	var c float64
	switch {
	case strings.HasPrefix(name, normalized):
		c += confNamePrefix
	case strings.HasPrefix(house, normalized):
		c += confHousePrefix
	}

	if len(tokens) > 0 {
		matched := 0
		for _, t := range tokens {
			if strings.Contains(name, t) {
				matched++
			}
		}
		c += confTokenCover * float64(matched) / float64(len(tokens))
	}

	if len(tokens) == 2 {
		first := strings.Index(name, tokens[0])
		second := strings.Index(name, tokens[1])
		if first >= 0 && second > first {
			c += confTokenOrder
		}
	}

	switch {
	case r.Popularity() >= popularityHighCutoff:
		c += confPopularityHigh
	case r.Popularity() >= popularityMidCutoff:
		c += confPopularityMid
	}

	switch {
	case r.AUM() >= aumHighCutoff:
		c += confAUMHigh
	case r.AUM() >= aumMidCutoff:
		c += confAUMMid
	}

	if c > 1 {
		c = 1
	}
	return c
}

// highlightName wraps every occurrence of each input token in emphasis
// markers, case-insensitively. Tokens are processed longest-first and claimed
// regions are never re-wrapped, so overlapping tokens cannot nest markers.
func highlightName(name string, tokens []string) string {
	lowered := strings.ToLower(name)
	if len(lowered) != len(name) {
		// Lowercasing changed byte offsets (non-ASCII edge); skip highlighting
		// rather than corrupt the name.
		return name
	}

	ordered := make([]string, len(tokens))
	copy(ordered, tokens)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	claimed := make([]bool, len(name))
	for _, tok := range ordered {
		if tok == "" {
			continue
		}
		for from := 0; ; {
			at := strings.Index(lowered[from:], tok)
			if at < 0 {
				break
			}
			start := from + at
			end := start + len(tok)
			if regionFree(claimed, start, end) {
				claim(claimed, start, end)
			}
			from = start + 1
		}
	}

	var b strings.Builder
	b.Grow(len(name) + 2*len(highlightOpen)*len(tokens))
	for i := 0; i < len(name); i++ {
		if claimed[i] && (i == 0 || !claimed[i-1]) {
			b.WriteString(highlightOpen)
		}
		b.WriteByte(name[i])
		if claimed[i] && (i+1 == len(name) || !claimed[i+1]) {
			b.WriteString(highlightClose)
		}
	}
	return b.String()
}

// matchedTokens returns the input tokens found anywhere in the name.
func matchedTokens(name string, tokens []string) []string {
	lowered := strings.ToLower(name)
	var matched []string
	for _, t := range tokens {
		if strings.Contains(lowered, t) {
			matched = append(matched, t)
		}
	}
	return matched
}

func regionFree(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return false
		}
	}
	return true
}

func claim(claimed []bool, start, end int) {
	for i := start; i < end; i++ {
		claimed[i] = true
	}
}
