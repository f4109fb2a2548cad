// Package result defines a single search or autocomplete hit.
package result

import "github.com/arthaset/fundex/internal/domain/fund"

// MatchType names the retrieval strategy that produced a hit.
type MatchType string

// Match layer identifiers.
const (
	MatchExact  MatchType = "exact"
	MatchPrefix MatchType = "prefix"
	MatchFuzzy  MatchType = "fuzzy"
	MatchTag    MatchType = "tag"
)

// Result is a single ranked hit. Autocomplete hits additionally carry
// confidence, highlightedName, and matchedTokens.
type Result struct {
	schemeCode  string
	name        string
	fundHouse   string
	category    string
	subCategory string
	fundType    string
	nav         float64
	aum         float64
	popularity  float64

	score     float64
	matchType MatchType

	confidence      float64
	highlightedName string
	matchedTokens   []string
}

// FromFund builds a hit from a catalog snapshot with layer-assigned score.
func FromFund(f fund.Fund, score float64, mt MatchType) Result {
	return Result{
		schemeCode:  f.SchemeCode(),
		name:        f.Name(),
		fundHouse:   f.FundHouse(),
		category:    f.Category(),
		subCategory: f.SubCategory(),
		fundType:    f.FundType(),
		nav:         f.NAV(),
		aum:         f.AUM(),
		popularity:  f.Popularity(),
		score:       score,
		matchType:   mt,
	}
}

// Reconstruct rebuilds a hit from persisted fields (cache rehydration).
func Reconstruct(
	schemeCode, name, fundHouse, category, subCategory, fundType string,
	nav, aum, popularity, score float64, mt MatchType,
	confidence float64, highlightedName string, matchedTokens []string,
) Result {
	return Result{
		schemeCode:  schemeCode,
		name:        name,
		fundHouse:   fundHouse,
		category:    category,
		subCategory: subCategory,
		fundType:    fundType,
		nav:         nav,
		aum:         aum,
		popularity:  popularity,
		score:       score,
		matchType:   mt,

		confidence:      confidence,
		highlightedName: highlightedName,
		matchedTokens:   matchedTokens,
	}
}

// WithScore returns a copy with the score replaced.
func (r Result) WithScore(score float64) Result {
	r.score = score
	return r
}

// WithSuggestion returns a copy carrying the autocomplete-only fields.
func (r Result) WithSuggestion(confidence float64, highlightedName string, matchedTokens []string) Result {
	r.confidence = confidence
	r.highlightedName = highlightedName
	r.matchedTokens = matchedTokens
	return r
}

// SchemeCode returns the fund identifier.
func (r *Result) SchemeCode() string { return r.schemeCode }

// Name returns the display name.
func (r *Result) Name() string { return r.name }

// FundHouse returns the issuing house.
func (r *Result) FundHouse() string { return r.fundHouse }

// Category returns the top-level category.
func (r *Result) Category() string { return r.category }

// SubCategory returns the sub-category.
func (r *Result) SubCategory() string { return r.subCategory }

// FundType returns the instrument type.
func (r *Result) FundType() string { return r.fundType }

// NAV returns the current unit value.
func (r *Result) NAV() float64 { return r.nav }

// AUM returns assets under management.
func (r *Result) AUM() float64 { return r.aum }

// Popularity returns the popularity score.
func (r *Result) Popularity() float64 { return r.popularity }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// MatchType returns the strategy that produced the hit.
func (r *Result) MatchType() MatchType { return r.matchType }

// Confidence returns the 0-1 autocomplete confidence (0 for plain search hits).
func (r *Result) Confidence() float64 { return r.confidence }

// HighlightedName returns the name with matched substrings wrapped in
// emphasis markers (empty for plain search hits).
func (r *Result) HighlightedName() string { return r.highlightedName }

// MatchedTokens returns the input tokens found in the name.
func (r *Result) MatchedTokens() []string { return r.matchedTokens }
