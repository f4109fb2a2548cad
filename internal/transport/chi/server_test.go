package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arthaset/fundex/internal/domain/fund"
	"github.com/arthaset/fundex/internal/domain/search/options"
	"github.com/arthaset/fundex/internal/domain/search/result"
	healthuc "github.com/arthaset/fundex/internal/usecase/health"
	searchuc "github.com/arthaset/fundex/internal/usecase/search"
)

// stubCatalog serves one fund from the exact layer and nothing else.
type stubCatalog struct {
	exact []fund.Fund
}

func (c *stubCatalog) FindExact(context.Context, string, options.Filter, int) ([]fund.Fund, error) {
	return c.exact, nil
}

func (c *stubCatalog) FindByPrefix(context.Context, string, options.Filter, int) ([]fund.Fund, error) {
	return nil, nil
}

func (c *stubCatalog) FindBySubstring(context.Context, string, options.Filter, int) ([]fund.Fund, error) {
	return nil, nil
}

func (c *stubCatalog) FindByTags(context.Context, []string, options.Filter, int) ([]fund.Fund, error) {
	return nil, nil
}

func (c *stubCatalog) TextSearch(context.Context, string, options.Filter, int) ([]fund.Fund, error) {
	return nil, nil
}

func (c *stubCatalog) FuzzySearch(context.Context, string, options.Filter, int) ([]fund.Fund, error) {
	return nil, nil
}

func (c *stubCatalog) Autocomplete(context.Context, string, options.Filter, int) ([]fund.Fund, error) {
	return nil, nil
}

func (c *stubCatalog) SupportsAdvancedSearch(context.Context) bool { return false }

type stubCache struct{}

func (stubCache) Get(context.Context, string) ([]result.Result, bool) { return nil, false }
func (stubCache) Set(context.Context, string, []result.Result)       {}

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, catalog *stubCatalog, pingErr error) *chirouter.Mux {
	t.Helper()
	logger := zap.NewNop()
	search := searchuc.New(catalog, stubCache{}, searchuc.Config{}, logger)
	health := healthuc.New(&stubPinger{err: pingErr})

	r := chirouter.NewRouter()
	NewServer(search, health, logger).RegisterRoutes(r)
	return r
}

func TestHandleSearch(t *testing.T) {
	catalog := &stubCatalog{exact: []fund.Fund{
		fund.New("120503", "SBI Small Cap Fund", "SBI Mutual Fund",
			"Equity", "Small Cap", "Open Ended",
			101.5, 2e10, 900, []string{"equity"}, []string{"sbi"}),
	}}
	r := newTestRouter(t, catalog, nil)

	req := httptest.NewRequest("GET", "/v1/search?q=sbi+small&fuzzy=false&boost=false", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s", ct)
	}

	var resp struct {
		Results []map[string]any `json:"results"`
		Total   int              `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got total=%d results=%d", resp.Total, len(resp.Results))
	}

	hit := resp.Results[0]
	if hit["scheme_code"] != "120503" {
		t.Errorf("scheme_code = %v", hit["scheme_code"])
	}
	if hit["match_type"] != "exact" {
		t.Errorf("match_type = %v", hit["match_type"])
	}
	if _, present := hit["confidence"]; present {
		t.Error("search hits must omit autocomplete-only fields")
	}
}

func TestHandleSearch_ShortQueryReturnsEmptyList(t *testing.T) {
	r := newTestRouter(t, &stubCatalog{}, nil)

	req := httptest.NewRequest("GET", "/v1/search?q=s", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Results []json.RawMessage `json:"results"`
		Total   int               `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("total = %d", resp.Total)
	}
	if resp.Results == nil {
		t.Error("results must serialize as [] rather than null")
	}
}

func TestHandleSearch_InvalidParamsAreClamped(t *testing.T) {
	r := newTestRouter(t, &stubCatalog{}, nil)

	// Garbage limit and min_aum fall back to defaults instead of erroring.
	req := httptest.NewRequest("GET", "/v1/search?q=sbi&limit=abc&min_aum=xyz&fuzzy=maybe", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestHandleSuggest(t *testing.T) {
	catalog := &stubCatalog{}
	r := newTestRouter(t, catalog, nil)

	req := httptest.NewRequest("GET", "/v1/suggest?q=sb", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"db down", errors.New("connection refused"), http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, &stubCatalog{}, tt.pingErr)

			req := httptest.NewRequest("GET", "/healthz", http.NoBody)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}

			var resp struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Status != tt.wantBody {
				t.Errorf("status = %s, want %s", resp.Status, tt.wantBody)
			}
			if resp.Checks["database"] != tt.wantBody {
				t.Errorf("database check = %s", resp.Checks["database"])
			}
		})
	}
}
