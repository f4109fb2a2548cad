package result

import (
	"testing"

	"github.com/arthaset/fundex/internal/domain/fund"
)

func testFund() fund.Fund {
	return fund.New("120503", "SBI Small Cap Fund", "SBI Mutual Fund",
		"Equity", "Small Cap", "Open Ended",
		101.5, 2e10, 900, []string{"equity"}, []string{"sbi", "small"})
}

func TestFromFund(t *testing.T) {
	r := FromFund(testFund(), 150, MatchExact)

	if r.SchemeCode() != "120503" {
		t.Errorf("SchemeCode = %s", r.SchemeCode())
	}
	if r.Name() != "SBI Small Cap Fund" {
		t.Errorf("Name = %s", r.Name())
	}
	if r.Score() != 150 {
		t.Errorf("Score = %v", r.Score())
	}
	if r.MatchType() != MatchExact {
		t.Errorf("MatchType = %s", r.MatchType())
	}
	if r.Confidence() != 0 || r.HighlightedName() != "" || r.MatchedTokens() != nil {
		t.Error("search hits must not carry suggestion fields")
	}
}

func TestWithScore_DoesNotMutateOriginal(t *testing.T) {
	r := FromFund(testFund(), 100, MatchPrefix)
	boosted := r.WithScore(150)

	if boosted.Score() != 150 {
		t.Errorf("boosted score = %v", boosted.Score())
	}
	if r.Score() != 100 {
		t.Errorf("original score mutated: %v", r.Score())
	}
}

func TestWithSuggestion(t *testing.T) {
	r := FromFund(testFund(), 95, MatchPrefix)
	s := r.WithSuggestion(0.9, "<em>SBI Small</em> Cap Fund", []string{"sbi", "small"})

	if s.Confidence() != 0.9 {
		t.Errorf("Confidence = %v", s.Confidence())
	}
	if s.HighlightedName() != "<em>SBI Small</em> Cap Fund" {
		t.Errorf("HighlightedName = %s", s.HighlightedName())
	}
	if len(s.MatchedTokens()) != 2 {
		t.Errorf("MatchedTokens = %v", s.MatchedTokens())
	}
	if s.Score() != 95 || s.MatchType() != MatchPrefix {
		t.Error("suggestion fields must not disturb the base hit")
	}
}

func TestReconstruct_RoundTrip(t *testing.T) {
	r := Reconstruct("1", "Gold BeES", "Nippon", "Commodity", "ETF", "Open Ended",
		55.2, 1.5e9, 800, 104, MatchTag, 0.7, "<em>Gold</em> BeES", []string{"gold"})

	if r.FundHouse() != "Nippon" || r.Category() != "Commodity" {
		t.Error("identity fields lost")
	}
	if r.NAV() != 55.2 || r.AUM() != 1.5e9 || r.Popularity() != 800 {
		t.Error("numeric fields lost")
	}
	if r.MatchType() != MatchTag || r.Confidence() != 0.7 {
		t.Error("match fields lost")
	}
}
