package search

import (
	"sort"
	"strings"
)

// intentKeywords maps a catalog tag to the query keywords that trigger it.
// A tag fires when any of its keywords appears as a substring of the
// normalized query.
var intentKeywords = map[string][]string{
	"gold":          {"gold", "goldbees", "commodity", "precious"},
	"silver":        {"silver", "silverbees"},
	"equity":        {"equity", "stock", "shares", "large cap", "mid cap", "small cap"},
	"debt":          {"debt", "bond", "gilt", "liquid", "fixed income"},
	"hybrid":        {"hybrid", "balanced", "aggressive"},
	"international": {"international", "global", "nasdaq", "overseas", "us equity"},
	"sectoral":      {"pharma", "banking", "technology", "infrastructure", "fmcg", "energy"},
	"index":         {"index", "nifty", "sensex", "etf"},
}

// symbolTags are commodity tags whose exact-name queries get an autocomplete
// score boost (a user typing "gold" almost always wants the gold ETFs).
var symbolTags = map[string]bool{
	"gold":   true,
	"silver": true,
}

// categoryKeywords maps a strategy token to the catalog sub-category it names.
// Used by the two-token autocomplete pattern [house][strategy].
var categoryKeywords = map[string]string{
	"small":  "Small Cap",
	"large":  "Large Cap",
	"mid":    "Mid Cap",
	"multi":  "Multi Cap",
	"flexi":  "Flexi Cap",
	"hybrid": "Hybrid",
	"debt":   "Debt",
	"liquid": "Liquid",
	"gilt":   "Gilt",
}

// detectIntents returns the tags triggered by the normalized query, sorted
// for deterministic downstream queries and cache keys.
func detectIntents(normalized string) []string {
	var tags []string
	for tag, keywords := range intentKeywords {
		for _, kw := range keywords {
			if strings.Contains(normalized, kw) {
				tags = append(tags, tag)
				break
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// hasSymbolTag reports whether any detected tag is a symbol tag.
func hasSymbolTag(tags []string) bool {
	for _, t := range tags {
		if symbolTags[t] {
			return true
		}
	}
	return false
}
