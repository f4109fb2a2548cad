package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arthaset/fundex/internal/domain/fund"
	"github.com/arthaset/fundex/internal/domain/search/result"
)

func TestSuggest_ShortPrefixReturnsEmpty(t *testing.T) {
	catalog := &mockCatalog{}
	svc := newTestService(catalog, newMockCache(), false)

	for _, q := range []string{"", "s", " s "} {
		if got := svc.Suggest(context.Background(), q, 10); len(got) != 0 {
			t.Errorf("Suggest(%q): expected empty, got %d", q, len(got))
		}
	}
	if catalog.prefixCalls != 0 {
		t.Error("short prefixes must not hit the catalog")
	}
}

func TestSuggest_SingleTokenPrefixOnly(t *testing.T) {
	catalog := &mockCatalog{
		prefixFunds: []fund.Fund{
			makeFund("1", "SBI Bluechip Fund", "SBI Mutual Fund"),
			makeFund("2", "SBI Contra Fund", "SBI Mutual Fund"),
		},
	}
	svc := newTestService(catalog, newMockCache(), false)

	got := svc.Suggest(context.Background(), "sbi", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if catalog.substringCalls != 0 {
		t.Error("substring stage must not run once the limit is satisfied")
	}
	for i := range got {
		if got[i].MatchType() != result.MatchPrefix {
			t.Errorf("suggestion %d match type = %s, want prefix", i, got[i].MatchType())
		}
		if got[i].Confidence() <= 0 {
			t.Errorf("suggestion %d has zero confidence", i)
		}
	}
}

func TestSuggest_SingleTokenWidensToSubstring(t *testing.T) {
	catalog := &mockCatalog{
		prefixFunds:    []fund.Fund{makeFund("1", "Bluechip Fund", "Blue")},
		substringFunds: []fund.Fund{makeFund("2", "HDFC Bluechip", "HDFC")},
	}
	svc := newTestService(catalog, newMockCache(), false)

	got := svc.Suggest(context.Background(), "blue", 10)
	if catalog.substringCalls != 1 {
		t.Errorf("substring calls = %d, want 1", catalog.substringCalls)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
}

func TestSuggest_SymbolTagBoost(t *testing.T) {
	catalog := &mockCatalog{
		tagFunds: []fund.Fund{makeFundFull("au", "Gold BeES", "Nippon", "ETF", 5e9, 900, []string{"gold"})},
	}
	svc := newTestService(catalog, newMockCache(), false)

	got := svc.Suggest(context.Background(), "gold", 10)
	if catalog.tagCalls != 1 {
		t.Fatalf("tag calls = %d, want 1", catalog.tagCalls)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	// 80 * 1.3 for the gold symbol tag
	if got[0].Score() != suggestTagScore*symbolTagMultiplier {
		t.Errorf("score = %v, want %v", got[0].Score(), suggestTagScore*symbolTagMultiplier)
	}
}

func TestSuggest_PairRanksBrandStrategyFirst(t *testing.T) {
	sbiSmall := makeFundFull("1", "SBI Small Cap Fund", "SBI Mutual Fund", "Small Cap", 2e10, 900, nil)
	sbiLarge := makeFundFull("2", "SBI Bluechip Fund", "SBI Mutual Fund", "Large Cap", 3e10, 950, nil)
	catalog := &mockCatalog{
		prefixFunds: []fund.Fund{sbiSmall, sbiLarge},
	}
	svc := newTestService(catalog, newMockCache(), false)

	got := svc.Suggest(context.Background(), "sbi small", 10)
	if len(got) == 0 {
		t.Fatal("expected suggestions")
	}
	if got[0].SchemeCode() != "1" {
		t.Errorf("first suggestion = %s (%s), want SBI Small Cap Fund",
			got[0].SchemeCode(), got[0].Name())
	}
	if got[0].Confidence() < 0.8 {
		t.Errorf("confidence = %v, want >= 0.8", got[0].Confidence())
	}
	if !strings.Contains(got[0].HighlightedName(), "<em>Small</em>") {
		t.Errorf("highlighted name %q lacks emphasized token", got[0].HighlightedName())
	}
}

func TestSuggest_PairMatchesReversedOrder(t *testing.T) {
	fd := makeFund("1", "Small Cap Fund by Axis", "Axis")
	catalog := &mockCatalog{
		prefixFunds: []fund.Fund{fd},
	}
	svc := newTestService(catalog, newMockCache(), false)

	// Both prefix fetches return the same fund; the reversed pattern
	// ("axis" appears after "small") still matches it.
	got := svc.Suggest(context.Background(), "small axis", 10)
	if len(got) != 1 {
		t.Fatalf("expected 1 deduplicated suggestion, got %d", len(got))
	}
	if mt := got[0].MatchedTokens(); len(mt) != 2 {
		t.Errorf("matched tokens = %v, want both", mt)
	}
}

func TestSuggest_LongPrefixUsesAdvancedAutocomplete(t *testing.T) {
	catalog := &mockCatalog{
		advancedOK: true,
		acFunds:    []fund.Fund{makeFund("1", "SBI Small Cap Fund", "SBI")},
	}
	svc := newTestService(catalog, newMockCache(), true)

	got := svc.Suggest(context.Background(), "sbi small cap", 10)
	if catalog.acCalls != 1 {
		t.Errorf("autocomplete calls = %d, want 1", catalog.acCalls)
	}
	if catalog.prefixCalls != 0 {
		t.Error("n-gram fallback must not run when advanced autocomplete succeeds")
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
}

func TestSuggest_LongPrefixFallsBackToNgrams(t *testing.T) {
	catalog := &mockCatalog{
		advancedOK:  true,
		acErr:       errors.New("unsupported"),
		prefixFunds: []fund.Fund{makeFund("1", "SBI Small Cap Fund", "SBI")},
	}
	svc := newTestService(catalog, newMockCache(), true)

	got := svc.Suggest(context.Background(), "sbi small cap", 10)
	if catalog.prefixCalls == 0 {
		t.Error("expected the n-gram fallback to query by prefix")
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 deduplicated suggestion, got %d", len(got))
	}
	if got[0].Score() != ngramScore {
		t.Errorf("score = %v, want %v", got[0].Score(), ngramScore)
	}
}

func TestSuggest_CacheRoundTrip(t *testing.T) {
	catalog := &mockCatalog{
		prefixFunds: []fund.Fund{makeFund("1", "SBI Bluechip Fund", "SBI")},
	}
	cache := newMockCache()
	svc := newTestService(catalog, cache, false)

	first := svc.Suggest(context.Background(), "sbi", 10)
	calls := catalog.prefixCalls

	second := svc.Suggest(context.Background(), "sbi", 10)
	if catalog.prefixCalls != calls {
		t.Error("cache hit must not hit the catalog")
	}
	if len(second) != len(first) {
		t.Errorf("cached suggestions differ: %d vs %d", len(second), len(first))
	}

	// A different limit is a different cache entry.
	svc.Suggest(context.Background(), "sbi", 5)
	if catalog.prefixCalls == calls {
		t.Error("a different limit must bypass the cached entry")
	}
}

func TestSuggest_CacheCallsAreBounded(t *testing.T) {
	catalog := &mockCatalog{
		prefixFunds: []fund.Fund{makeFund("1", "SBI Bluechip Fund", "SBI")},
	}
	cache := newMockCache()
	svc := newTestService(catalog, cache, false)

	svc.Suggest(context.Background(), "sbi", 10)
	if !cache.getHadDeadline {
		t.Error("cache Get must run under a deadline")
	}
	if !cache.setHadDeadline {
		t.Error("cache Set must run under a deadline")
	}
}

func TestSuggest_OrderedByConfidence(t *testing.T) {
	weak := makeFundFull("w", "Unrelated Name", "Blue Horizon", "Debt", 1e7, 10, nil)
	strong := makeFundFull("s", "Bluechip Leaders", "Axis", "Large Cap", 2e10, 900, nil)
	catalog := &mockCatalog{
		prefixFunds: []fund.Fund{weak, strong},
	}
	svc := newTestService(catalog, newMockCache(), false)

	got := svc.Suggest(context.Background(), "blue", 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].SchemeCode() != "s" {
		t.Errorf("first suggestion = %s, want the name-prefix match", got[0].SchemeCode())
	}
	if got[0].Confidence() < got[1].Confidence() {
		t.Error("suggestions not ordered by confidence")
	}
}

func TestNgrams(t *testing.T) {
	grams := ngrams("sbi cap", 2, 3)

	want := map[string]bool{"sb": true, "bi": true, "sbi": true, "ca": true, "ap": true, "cap": true}
	if len(grams) != len(want) {
		t.Fatalf("ngrams = %v, want %d distinct grams", grams, len(want))
	}
	for _, g := range grams {
		if !want[g] {
			t.Errorf("unexpected gram %q", g)
		}
	}
}
