package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/arthaset/fundex/internal/domain/fund"
	"github.com/arthaset/fundex/internal/domain/search/options"
	"github.com/arthaset/fundex/internal/domain/search/result"
)

// Layer scoring. Each layer assigns its base score times its weight; the
// merger only boosts and sorts.
const (
	exactBaseScore  = 100.0
	prefixBaseScore = 80.0
	tagBaseScore    = 50.0

	exactWeight  = 1.5
	prefixWeight = 1.2
	tagWeight    = 0.8

	exactLimit  = 5
	prefixLimit = 10
	tagLimit    = 15

	// Local fuzzy accepts candidates within this edit distance of the query.
	maxEditDistance = 2
	// Fuzzy matching needs at least this many characters to be meaningful.
	minFuzzyQueryLength = 3
	// Candidates fetched for local Levenshtein re-scoring.
	fuzzyCandidateLimit = 30

	// Advanced fuzzy hits are platform-ranked; scores decay by rank.
	fuzzyAdvancedBase = 80.0
	fuzzyRankStep     = 3.0
	fuzzyMinScore     = 50.0
)

func (s *Service) exactLayer(
	ctx context.Context, query string, f options.Filter,
) ([]result.Result, error) {
	funds, err := s.catalog.FindExact(ctx, query, f, exactLimit)
	if err != nil {
		return nil, err
	}
	return scoreFunds(funds, exactBaseScore*exactWeight, result.MatchExact), nil
}

func (s *Service) prefixLayer(
	ctx context.Context, query string, f options.Filter,
) ([]result.Result, error) {
	funds, err := s.catalog.FindByPrefix(ctx, query, f, prefixLimit)
	if err != nil {
		return nil, err
	}
	return scoreFunds(funds, prefixBaseScore*prefixWeight, result.MatchPrefix), nil
}

func (s *Service) tagLayer(
	ctx context.Context, tags []string, f options.Filter,
) ([]result.Result, error) {
	funds, err := s.catalog.FindByTags(ctx, tags, f, tagLimit)
	if err != nil {
		return nil, err
	}
	return scoreFunds(funds, tagBaseScore*tagWeight, result.MatchTag), nil
}

// fuzzyLayer uses the platform's fuzzy matching when the advanced path is
// active, falling back to local Levenshtein re-scoring on failure or when
// the flag is off.
func (s *Service) fuzzyLayer(
	ctx context.Context, query string, f options.Filter, advanced bool,
) ([]result.Result, error) {
	if advanced {
		funds, err := s.catalog.FuzzySearch(ctx, query, f, prefixLimit)
		if err == nil {
			return scoreByRank(funds), nil
		}
		s.logger.Warn("advanced fuzzy search failed, using local fallback", zap.Error(err))
	}
	return s.localFuzzy(ctx, query, f)
}

// localFuzzy re-scores basic text-search candidates by the lower of the edit
// distances between the query and the candidate's name or fund house.
// Candidates farther than maxEditDistance are rejected.
func (s *Service) localFuzzy(
	ctx context.Context, query string, f options.Filter,
) ([]result.Result, error) {
	funds, err := s.catalog.TextSearch(ctx, query, f, fuzzyCandidateLimit)
	if err != nil {
		return nil, err
	}

	results := make([]result.Result, 0, len(funds))
	for _, fd := range funds {
		nameDist := levenshtein(query, strings.ToLower(fd.Name()))
		houseDist := levenshtein(query, strings.ToLower(fd.FundHouse()))
		dist := min(nameDist, houseDist)
		if dist > maxEditDistance {
			continue
		}
		score := (1 - float64(dist)/float64(len(query))) * 100
		results = append(results, result.FromFund(fd, score, result.MatchFuzzy))
	}
	return results, nil
}

func scoreFunds(funds []fund.Fund, score float64, mt result.MatchType) []result.Result {
	results := make([]result.Result, 0, len(funds))
	for _, f := range funds {
		results = append(results, result.FromFund(f, score, mt))
	}
	return results
}

// scoreByRank assigns decaying scores to platform-ranked fuzzy hits.
func scoreByRank(funds []fund.Fund) []result.Result {
	results := make([]result.Result, 0, len(funds))
	for i, f := range funds {
		score := fuzzyAdvancedBase - fuzzyRankStep*float64(i)
		if score < fuzzyMinScore {
			score = fuzzyMinScore
		}
		results = append(results, result.FromFund(f, score, result.MatchFuzzy))
	}
	return results
}
