package search

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/arthaset/fundex/internal/domain/fund"
	"github.com/arthaset/fundex/internal/domain/search/options"
	"github.com/arthaset/fundex/internal/domain/search/result"
	"github.com/arthaset/fundex/internal/metrics"
)

// Autocomplete scoring. Two-token prefixes are tried as four patterns with
// distinct scores; final ordering is by confidence, so these only break ties
// through the dedupe rule (higher score survives).
const (
	suggestPrefixScore    = 90.0
	suggestSubstringScore = 70.0
	suggestTagScore       = 80.0
	symbolTagMultiplier   = 1.3

	pairBrandStrategyScore = 95.0
	pairReversedScore      = 85.0
	pairAnyOrderScore      = 80.0
	pairCategoryScore      = 90.0

	ngramScore = 70.0

	// Two-token patterns fetch a wider net and filter locally.
	pairFetchFactor = 3
)

// Suggest returns autocomplete candidates for a typed prefix, ranked by
// confidence and carrying highlighted names and matched tokens. Prefixes
// shorter than two characters yield an empty list. Suggest never fails;
// degraded collaborators shrink the list instead.
func (s *Service) Suggest(ctx context.Context, prefix string, limit int) []result.Result {
	normalized, tokens := normalizeQuery(prefix)
	if len(normalized) < minQueryLength {
		return nil
	}
	if limit <= 0 {
		limit = options.DefaultLimit
	}
	if limit > options.MaxLimit {
		limit = options.MaxLimit
	}

	key := "suggest:" + normalized + "|" + strconv.Itoa(limit)
	if cached, ok := s.cacheGet(ctx, key); ok {
		metrics.CacheHit("suggest")
		return cached
	}
	metrics.CacheMiss("suggest")

	var candidates []result.Result
	switch len(tokens) {
	case 1:
		candidates = s.suggestSingle(ctx, tokens[0], limit)
	case 2:
		candidates = s.suggestPair(ctx, tokens[0], tokens[1], limit)
	default:
		candidates = s.suggestLong(ctx, normalized, limit)
	}

	suggestions := s.enrich(candidates, normalized, tokens)
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	s.cacheSet(ctx, key, suggestions)
	return suggestions
}

// suggestSingle widens retrieval in stages until the limit is satisfied:
// prefix match, then substring match, then intent tags. Symbol tags (gold,
// silver) get an extra multiplier so exact commodity names surface first.
func (s *Service) suggestSingle(ctx context.Context, token string, limit int) []result.Result {
	var none options.Filter
	var out []result.Result

	out = append(out, scoreFunds(
		s.tryCatalog(ctx, "suggest prefix", func(lctx context.Context) ([]fund.Fund, error) {
			return s.catalog.FindByPrefix(lctx, token, none, limit)
		}),
		suggestPrefixScore, result.MatchPrefix)...)

	if len(out) < limit {
		out = append(out, scoreFunds(
			s.tryCatalog(ctx, "suggest substring", func(lctx context.Context) ([]fund.Fund, error) {
				return s.catalog.FindBySubstring(lctx, token, none, limit)
			}),
			suggestSubstringScore, result.MatchPrefix)...)
	}

	if len(out) < limit {
		if tags := detectIntents(token); len(tags) > 0 {
			score := suggestTagScore
			if hasSymbolTag(tags) {
				score *= symbolTagMultiplier
			}
			out = append(out, scoreFunds(
				s.tryCatalog(ctx, "suggest tags", func(lctx context.Context) ([]fund.Fund, error) {
					return s.catalog.FindByTags(lctx, tags, none, limit)
				}),
				score, result.MatchTag)...)
		}
	}

	return dedupeKeepMax(out)
}

// suggestPair tries the ordered token pair as four patterns:
//  1. first=brand, second=strategy (anywhere in name)
//  2. the reverse
//  3. both tokens anywhere in the name
//  4. first=fund house, second maps to a known sub-category
func (s *Service) suggestPair(ctx context.Context, first, second string, limit int) []result.Result {
	var none options.Filter
	fetch := limit * pairFetchFactor
	var out []result.Result

	brandFirst := s.tryCatalog(ctx, "suggest pair brand", func(lctx context.Context) ([]fund.Fund, error) {
		return s.catalog.FindByPrefix(lctx, first, none, fetch)
	})
	for _, fd := range brandFirst {
		if strings.Contains(strings.ToLower(fd.Name()), second) {
			out = append(out, result.FromFund(fd, pairBrandStrategyScore, result.MatchPrefix))
		}
	}

	brandSecond := s.tryCatalog(ctx, "suggest pair reversed", func(lctx context.Context) ([]fund.Fund, error) {
		return s.catalog.FindByPrefix(lctx, second, none, fetch)
	})
	for _, fd := range brandSecond {
		if strings.Contains(strings.ToLower(fd.Name()), first) {
			out = append(out, result.FromFund(fd, pairReversedScore, result.MatchPrefix))
		}
	}

	both := s.tryCatalog(ctx, "suggest pair substring", func(lctx context.Context) ([]fund.Fund, error) {
		return s.catalog.FindBySubstring(lctx, first+" "+second, none, fetch)
	})
	out = append(out, scoreFunds(both, pairAnyOrderScore, result.MatchPrefix)...)

	if subCategory, ok := categoryKeywords[second]; ok {
		for _, fd := range brandFirst {
			if strings.HasPrefix(strings.ToLower(fd.FundHouse()), first) &&
				fd.SubCategory() == subCategory {
				out = append(out, result.FromFund(fd, pairCategoryScore, result.MatchPrefix))
			}
		}
	}

	return dedupeKeepMax(out)
}

// suggestLong handles prefixes of three or more tokens: the advanced
// autocomplete when available, otherwise an n-gram fallback over the
// precomputed search terms.
func (s *Service) suggestLong(ctx context.Context, normalized string, limit int) []result.Result {
	var none options.Filter

	if s.cfg.EnableAdvancedSearch && s.catalog.SupportsAdvancedSearch(ctx) {
		funds, err := s.catalog.Autocomplete(ctx, normalized, none, limit)
		if err == nil {
			return scoreFunds(funds, suggestPrefixScore, result.MatchPrefix)
		}
		s.logger.Warn("advanced autocomplete failed, using n-gram fallback", zap.Error(err))
	}

	funds := s.tryCatalog(ctx, "suggest literal prefix", func(lctx context.Context) ([]fund.Fund, error) {
		return s.catalog.FindByPrefix(lctx, normalized, none, limit)
	})
	out := scoreFunds(funds, ngramScore, result.MatchPrefix)
	if len(out) >= limit {
		return out
	}

	for _, gram := range ngrams(normalized, 2, 3) {
		more := s.tryCatalog(ctx, "suggest ngram", func(lctx context.Context) ([]fund.Fund, error) {
			return s.catalog.FindByPrefix(lctx, gram, none, limit)
		})
		out = append(out, scoreFunds(more, ngramScore, result.MatchPrefix)...)
		if len(out) >= limit*pairFetchFactor {
			break
		}
	}

	return dedupeKeepMax(out)
}

// enrich computes confidence, highlighting, and matched tokens for every
// candidate, then orders by confidence descending (score breaks ties).
func (s *Service) enrich(candidates []result.Result, normalized string, tokens []string) []result.Result {
	suggestions := make([]result.Result, 0, len(candidates))
	for i := range candidates {
		r := candidates[i]
		conf := scoreConfidence(&r, normalized, tokens)
		suggestions = append(suggestions, r.WithSuggestion(
			conf,
			highlightName(r.Name(), tokens),
			matchedTokens(r.Name(), tokens),
		))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence() != suggestions[j].Confidence() {
			return suggestions[i].Confidence() > suggestions[j].Confidence()
		}
		return suggestions[i].Score() > suggestions[j].Score()
	})
	return suggestions
}

// ngrams returns the distinct 2-3 character substrings of each token,
// shortest prefixes first, skipping whitespace.
func ngrams(s string, minLen, maxLen int) []string {
	seen := make(map[string]bool)
	var grams []string
	for _, tok := range strings.Fields(s) {
		for n := minLen; n <= maxLen; n++ {
			for i := 0; i+n <= len(tok); i++ {
				g := tok[i : i+n]
				if !seen[g] {
					seen[g] = true
					grams = append(grams, g)
				}
			}
		}
	}
	return grams
}
