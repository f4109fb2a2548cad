package search

import (
	"context"

	"github.com/arthaset/fundex/internal/domain/fund"
	"github.com/arthaset/fundex/internal/domain/search/options"
	"github.com/arthaset/fundex/internal/domain/search/result"
)

// Catalog is the read-only fund catalog collaborator. FuzzySearch and
// Autocomplete belong to the feature-flagged advanced path and may return
// domain.ErrAdvancedSearchNotSupported.
type Catalog interface {
	FindExact(ctx context.Context, query string, f options.Filter, limit int) ([]fund.Fund, error)
	FindByPrefix(ctx context.Context, query string, f options.Filter, limit int) ([]fund.Fund, error)
	FindBySubstring(ctx context.Context, query string, f options.Filter, limit int) ([]fund.Fund, error)
	FindByTags(ctx context.Context, tags []string, f options.Filter, limit int) ([]fund.Fund, error)
	TextSearch(ctx context.Context, query string, f options.Filter, limit int) ([]fund.Fund, error)

	FuzzySearch(ctx context.Context, query string, f options.Filter, limit int) ([]fund.Fund, error)
	Autocomplete(ctx context.Context, prefix string, f options.Filter, limit int) ([]fund.Fund, error)
	SupportsAdvancedSearch(ctx context.Context) bool
}

// ResultCache stores computed result lists keyed by normalized query plus
// serialized options. Implementations are best-effort: a broken cache reads
// as a miss and swallows writes.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]result.Result, bool)
	Set(ctx context.Context, key string, results []result.Result)
}
