package search

import "strings"

// minQueryLength is the shortest normalized query the engine answers.
// Anything shorter returns an empty result list, not an error.
const minQueryLength = 2

// normalizeQuery lowercases and trims a raw query and splits it into
// whitespace-delimited tokens. Idempotent and never fails: an empty query
// yields an empty token list.
func normalizeQuery(raw string) (string, []string) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	return normalized, strings.Fields(normalized)
}
