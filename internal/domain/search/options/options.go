// Package options defines validated search parameters.
package options

import (
	"fmt"
	"strings"
)

// Limits for search parameters.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Filter narrows catalog queries by category and fund size.
// The zero value matches everything.
type Filter struct {
	Category string
	MinAUM   float64
}

// IsEmpty reports whether the filter constrains anything.
func (f Filter) IsEmpty() bool { return f.Category == "" && f.MinAUM <= 0 }

// Options are validated, clamped search parameters.
// Invalid values are clamped to safe defaults, never rejected.
type Options struct {
	limit        int
	filter       Filter
	enableFuzzy  bool
	boostPopular bool
}

// New normalizes search options.
// Defaults: limit=10, fuzzy and popularity boosting enabled.
func New(limit int, category string, minAUM float64, enableFuzzy, boostPopular bool) Options {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if minAUM < 0 {
		minAUM = 0
	}
	return Options{
		limit:        limit,
		filter:       Filter{Category: strings.TrimSpace(category), MinAUM: minAUM},
		enableFuzzy:  enableFuzzy,
		boostPopular: boostPopular,
	}
}

// Default returns options with every field at its default.
func Default() Options {
	return New(0, "", 0, true, true)
}

// Limit returns the maximum results to return.
func (o Options) Limit() int { return o.limit }

// Filter returns the category/AUM filter.
func (o Options) Filter() Filter { return o.filter }

// EnableFuzzy reports whether the fuzzy layer may run.
func (o Options) EnableFuzzy() bool { return o.enableFuzzy }

// BoostPopular reports whether AUM/popularity boosting applies.
func (o Options) BoostPopular() bool { return o.boostPopular }

// CacheKey is a stable serialization used to key cached result lists.
func (o Options) CacheKey() string {
	return fmt.Sprintf("l=%d|c=%s|a=%g|f=%t|b=%t",
		o.limit, strings.ToLower(o.filter.Category), o.filter.MinAUM,
		o.enableFuzzy, o.boostPopular,
	)
}
