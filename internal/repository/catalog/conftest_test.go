package catalog

import (
	"context"
	"testing"

	"github.com/arthaset/fundex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hGetAllFn            func(ctx context.Context, key string) (map[string]string, error)
	hSetMultiFn          func(ctx context.Context, items []db.HashSetItem) error
	searchFn             func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	createIndexFn        func(ctx context.Context, def *db.IndexDefinition) error
	supportsTextSearchFn func(ctx context.Context) bool
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hSetMultiFn != nil {
		return m.hSetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) SupportsTextSearch(ctx context.Context) bool {
	if m.supportsTextSearchFn != nil {
		return m.supportsTextSearchFn(ctx)
	}
	return true
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func fundEntry(code string, fields map[string]string) db.SearchEntry {
	return db.SearchEntry{
		Key:    "fundex:fund:" + code,
		Fields: fields,
	}
}

func fundFields(name, house string) map[string]string {
	return map[string]string{
		"name":       name,
		"fund_house": house,
		"category":   "Equity",
		"nav":        "101.5",
		"aum":        "5000000000",
		"popularity": "500",
		"tags":       "equity,index",
	}
}
