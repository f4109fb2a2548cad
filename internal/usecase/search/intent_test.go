package search

import (
	"reflect"
	"testing"
)

func TestDetectIntents(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"gold etf", []string{"gold", "index"}},
		{"silver", []string{"silver"}},
		{"small cap equity", []string{"equity"}},
		{"liquid bees", []string{"debt"}},
		{"nasdaq 100", []string{"international"}},
		{"banking and pharma", []string{"sectoral"}},
		{"hdfc top 100", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := detectIntents(tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("detectIntents(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestDetectIntents_Sorted(t *testing.T) {
	// Multiple tags fire; output order must be deterministic.
	got := detectIntents("gold and silver etf")
	want := []string{"gold", "index", "silver"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("detectIntents = %v, want sorted %v", got, want)
	}
}

func TestHasSymbolTag(t *testing.T) {
	if !hasSymbolTag([]string{"index", "gold"}) {
		t.Error("gold is a symbol tag")
	}
	if hasSymbolTag([]string{"equity", "debt"}) {
		t.Error("equity/debt are not symbol tags")
	}
	if hasSymbolTag(nil) {
		t.Error("empty tag list has no symbol tag")
	}
}

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		raw        string
		normalized string
		tokens     []string
	}{
		{"  SBI Small Cap  ", "sbi small cap", []string{"sbi", "small", "cap"}},
		{"GOLD", "gold", []string{"gold"}},
		{"", "", nil},
		{"   ", "", nil},
		{"a  b", "a  b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		normalized, tokens := normalizeQuery(tt.raw)
		if normalized != tt.normalized {
			t.Errorf("normalizeQuery(%q) normalized = %q, want %q", tt.raw, normalized, tt.normalized)
		}
		if len(tokens) != len(tt.tokens) {
			t.Errorf("normalizeQuery(%q) tokens = %v, want %v", tt.raw, tokens, tt.tokens)
			continue
		}
		for i := range tokens {
			if tokens[i] != tt.tokens[i] {
				t.Errorf("normalizeQuery(%q) token %d = %q, want %q", tt.raw, i, tokens[i], tt.tokens[i])
			}
		}
	}
}
