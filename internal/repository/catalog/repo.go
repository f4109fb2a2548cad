// Package catalog implements typed queries over the fund catalog hashes and
// their FT index. The search engine treats the catalog as read-only; Upsert
// and EnsureIndex exist for the loader.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/arthaset/fundex/internal/db"
	"github.com/arthaset/fundex/internal/domain"
	"github.com/arthaset/fundex/internal/domain/fund"
	"github.com/arthaset/fundex/internal/domain/search/options"
)

// store is the consumer interface for catalog operations (ISP).
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Search(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	SupportsTextSearch(ctx context.Context) bool
}

// Repo implements the fund catalog collaborator consumed by the search engine.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SupportsAdvancedSearch reports whether the backend can serve the
// platform-backed fuzzy/autocomplete path.
func (r *Repo) SupportsAdvancedSearch(ctx context.Context) bool {
	return r.store.SupportsTextSearch(ctx)
}

// FindExact returns funds whose full name matches the query case-insensitively,
// or the single fund whose scheme code equals the query.
func (r *Repo) FindExact(
	ctx context.Context, query string, f options.Filter, limit int,
) ([]fund.Fund, error) {
	var funds []fund.Fund

	// Scheme codes are catalog keys; try a direct lookup first. The lookup
	// bypasses the FT index, so the filter applies here in code.
	fields, err := r.store.HGetAll(ctx, domain.FundKeyPrefix+query)
	if err == nil && len(fields) > 0 {
		if fd := fundFromFields(query, fields); matchesFilter(fd, f) {
			funds = append(funds, fd)
		}
	}

	base := fmt.Sprintf("@%s:%q", fieldName, db.EscapeQueryTerm(query))
	sr, err := r.store.Search(ctx, &db.TextQuery{
		IndexName: domain.FundIndexName,
		Query:     withFilter(base, f),
		Limit:     limit,
	})
	if err != nil {
		return funds, fmt.Errorf("find exact: %w", err)
	}

	// The phrase query matches names containing the phrase; keep only
	// full-name matches so partial hits stay in the prefix layer.
	for _, fd := range parseFunds(sr) {
		if strings.EqualFold(fd.Name(), query) {
			funds = append(funds, fd)
		}
	}
	return capFunds(funds, limit), nil
}

// matchesFilter checks a fund against the category and minimum-AUM filter
// for lookups that do not go through the FT index.
func matchesFilter(fd fund.Fund, f options.Filter) bool {
	if f.Category != "" && !strings.EqualFold(fd.Category(), f.Category) {
		return false
	}
	return fd.AUM() >= f.MinAUM
}

// FindByPrefix returns funds whose name, fund house, scheme code, or any
// precomputed search term starts with the query, ordered by popularity then AUM.
func (r *Repo) FindByPrefix(
	ctx context.Context, query string, f options.Filter, limit int,
) ([]fund.Fund, error) {
	base := fmt.Sprintf("@%s|%s|%s|%s:(%s)",
		fieldName, fieldFundHouse, fieldSearchTerms, fieldSchemeCode, prefixExpr(query))

	sr, err := r.store.Search(ctx, &db.TextQuery{
		IndexName: domain.FundIndexName,
		Query:     withFilter(base, f),
		SortBy:    fieldPopularity,
		SortDesc:  true,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("find by prefix: %w", err)
	}

	funds := parseFunds(sr)
	sortByPopularityAUM(funds)
	return funds, nil
}

// FindBySubstring returns funds whose name contains the query anywhere.
func (r *Repo) FindBySubstring(
	ctx context.Context, query string, f options.Filter, limit int,
) ([]fund.Fund, error) {
	tokens := strings.Fields(query)
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, wildcardToken(t))
	}
	base := fmt.Sprintf("@%s:(%s)", fieldName, strings.Join(parts, " "))

	sr, err := r.store.Search(ctx, &db.TextQuery{
		IndexName: domain.FundIndexName,
		Query:     withFilter(base, f),
		SortBy:    fieldPopularity,
		SortDesc:  true,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("find by substring: %w", err)
	}
	return parseFunds(sr), nil
}

// FindByTags returns funds carrying at least one of the given tags,
// ordered by popularity then AUM.
func (r *Repo) FindByTags(
	ctx context.Context, tags []string, f options.Filter, limit int,
) ([]fund.Fund, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	escaped := make([]string, 0, len(tags))
	for _, t := range tags {
		escaped = append(escaped, db.EscapeTagValue(t))
	}
	base := fmt.Sprintf("@%s:{%s}", fieldTags, strings.Join(escaped, "|"))

	sr, err := r.store.Search(ctx, &db.TextQuery{
		IndexName: domain.FundIndexName,
		Query:     withFilter(base, f),
		SortBy:    fieldPopularity,
		SortDesc:  true,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("find by tags: %w", err)
	}

	funds := parseFunds(sr)
	sortByPopularityAUM(funds)
	return funds, nil
}

// TextSearch runs a plain per-token OR query over name and fund house.
// It feeds the local fuzzy layer with candidates for Levenshtein re-scoring.
func (r *Repo) TextSearch(
	ctx context.Context, query string, f options.Filter, limit int,
) ([]fund.Fund, error) {
	tokens := strings.Fields(query)
	escaped := make([]string, 0, len(tokens))
	for _, t := range tokens {
		escaped = append(escaped, db.EscapeQueryTerm(t))
	}
	base := fmt.Sprintf("@%s|%s:(%s)", fieldName, fieldFundHouse, strings.Join(escaped, "|"))

	sr, err := r.store.Search(ctx, &db.TextQuery{
		IndexName:  domain.FundIndexName,
		Query:      withFilter(base, f),
		WithScores: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	return parseFunds(sr), nil
}

// FuzzySearch delegates edit-distance matching to the search platform
// (%term% tolerates one edit, %%term%% two). Advanced path only.
func (r *Repo) FuzzySearch(
	ctx context.Context, query string, f options.Filter, limit int,
) ([]fund.Fund, error) {
	if !r.store.SupportsTextSearch(ctx) {
		return nil, domain.ErrAdvancedSearchNotSupported
	}

	tokens := strings.Fields(query)
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		esc := db.EscapeQueryTerm(t)
		if len(t) >= 5 {
			parts = append(parts, "%%"+esc+"%%")
		} else {
			parts = append(parts, "%"+esc+"%")
		}
	}
	base := fmt.Sprintf("@%s|%s:(%s)", fieldName, fieldFundHouse, strings.Join(parts, "|"))

	sr, err := r.store.Search(ctx, &db.TextQuery{
		IndexName:  domain.FundIndexName,
		Query:      withFilter(base, f),
		WithScores: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("fuzzy search: %w", err)
	}
	return parseFunds(sr), nil
}

// Autocomplete treats the last token as a prefix and the rest as exact terms.
// Advanced path only.
func (r *Repo) Autocomplete(
	ctx context.Context, prefix string, f options.Filter, limit int,
) ([]fund.Fund, error) {
	if !r.store.SupportsTextSearch(ctx) {
		return nil, domain.ErrAdvancedSearchNotSupported
	}

	base := fmt.Sprintf("@%s|%s|%s|%s:(%s)",
		fieldName, fieldFundHouse, fieldSearchTerms, fieldSchemeCode, prefixExpr(prefix))

	sr, err := r.store.Search(ctx, &db.TextQuery{
		IndexName:  domain.FundIndexName,
		Query:      withFilter(base, f),
		WithScores: true,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	return parseFunds(sr), nil
}

// Upsert writes fund hashes in one pipelined round-trip. Loader-only.
func (r *Repo) Upsert(ctx context.Context, funds []fund.Fund) error {
	items := make([]db.HashSetItem, 0, len(funds))
	for _, f := range funds {
		items = append(items, db.HashSetItem{
			Key:    domain.FundKeyPrefix + f.SchemeCode(),
			Fields: fundToFields(f),
		})
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert funds: %w", err)
	}
	return nil
}

// EnsureIndex creates the catalog FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := &db.IndexDefinition{
		Name:        domain.FundIndexName,
		StorageType: db.StorageHash,
		Prefixes:    []string{domain.FundKeyPrefix},
		Fields: []db.IndexField{
			{Name: fieldSchemeCode, Type: db.IndexFieldText},
			{Name: fieldName, Type: db.IndexFieldText},
			{Name: fieldFundHouse, Type: db.IndexFieldText},
			{Name: fieldSearchTerms, Type: db.IndexFieldText},
			{Name: fieldCategory, Type: db.IndexFieldTag},
			{Name: fieldSubCategory, Type: db.IndexFieldTag},
			{Name: fieldFundType, Type: db.IndexFieldTag},
			{Name: fieldTags, Type: db.IndexFieldTag, TagSeparator: tagSeparator},
			{Name: fieldNAV, Type: db.IndexFieldNumeric},
			{Name: fieldAUM, Type: db.IndexFieldNumeric, Sortable: true},
			{Name: fieldPopularity, Type: db.IndexFieldNumeric, Sortable: true},
		},
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("ensure index: %w", err)
	}
	return nil
}

// prefixExpr renders tokens with the last one as a prefix match:
// "sbi sm" -> "sbi sm*".
func prefixExpr(query string) string {
	tokens := strings.Fields(query)
	escaped := make([]string, 0, len(tokens))
	for _, t := range tokens {
		escaped = append(escaped, db.EscapeQueryTerm(t))
	}
	if len(escaped) > 0 {
		escaped[len(escaped)-1] += "*"
	}
	return strings.Join(escaped, " ")
}

// wildcardToken renders an infix wildcard match: "mall" -> w'*mall*'.
func wildcardToken(t string) string {
	t = strings.ReplaceAll(t, `\`, `\\`)
	t = strings.ReplaceAll(t, `'`, `\'`)
	return "w'*" + t + "*'"
}

// withFilter appends category and minimum-AUM constraints to a query.
func withFilter(base string, f options.Filter) string {
	if f.IsEmpty() {
		return base
	}
	parts := []string{base}
	if f.Category != "" {
		parts = append(parts, fmt.Sprintf("@%s:{%s}", fieldCategory, db.EscapeTagValue(f.Category)))
	}
	if f.MinAUM > 0 {
		parts = append(parts, fmt.Sprintf("@%s:[%g +inf]", fieldAUM, f.MinAUM))
	}
	return strings.Join(parts, " ")
}

func parseFunds(sr *db.SearchResult) []fund.Fund {
	if sr == nil || sr.Total == 0 {
		return nil
	}
	funds := make([]fund.Fund, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		schemeCode := strings.TrimPrefix(entry.Key, domain.FundKeyPrefix)
		funds = append(funds, fundFromFields(schemeCode, entry.Fields))
	}
	return funds
}

func sortByPopularityAUM(funds []fund.Fund) {
	sort.SliceStable(funds, func(i, j int) bool {
		if funds[i].Popularity() != funds[j].Popularity() {
			return funds[i].Popularity() > funds[j].Popularity()
		}
		return funds[i].AUM() > funds[j].AUM()
	})
}

func capFunds(funds []fund.Fund, limit int) []fund.Fund {
	if limit > 0 && len(funds) > limit {
		return funds[:limit]
	}
	return funds
}
