// Package chi exposes the search engine over HTTP. The engine core stays
// transport-agnostic; request parsing and wire shapes live here.
package chi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arthaset/fundex/internal/domain/search/options"
	"github.com/arthaset/fundex/internal/domain/search/result"
	healthuc "github.com/arthaset/fundex/internal/usecase/health"
	searchuc "github.com/arthaset/fundex/internal/usecase/search"
)

// Server routes HTTP requests to the search and health services.
type Server struct {
	search *searchuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, logger: logger}
}

// RegisterRoutes mounts the API endpoints on the given router.
// Middleware composition is the caller's concern.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/suggest", s.handleSuggest)
	})
}

// handleSearch handles GET /v1/search.
// Query params: q, limit, category, min_aum, fuzzy, boost.
// Invalid values are clamped, never rejected.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := options.New(
		parseInt(q.Get("limit"), 0),
		q.Get("category"),
		parseFloat(q.Get("min_aum"), 0),
		parseBool(q.Get("fuzzy"), true),
		parseBool(q.Get("boost"), true),
	)

	results := s.search.Search(r.Context(), q.Get("q"), opts)
	writeJSON(w, http.StatusOK, searchResponse{
		Results: resultsToJSON(results),
		Total:   len(results),
	})
}

// handleSuggest handles GET /v1/suggest. Query params: q, limit.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	results := s.search.Suggest(r.Context(), q.Get("q"), parseInt(q.Get("limit"), 0))
	writeJSON(w, http.StatusOK, searchResponse{
		Results: resultsToJSON(results),
		Total:   len(results),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}
	writeJSON(w, status, healthResponse{Status: string(report.Status), Checks: checks})
}

// --- Wire shapes ---

type searchResponse struct {
	Results []resultJSON `json:"results"`
	Total   int          `json:"total"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type resultJSON struct {
	SchemeCode  string  `json:"scheme_code"`
	Name        string  `json:"name"`
	FundHouse   string  `json:"fund_house"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category"`
	FundType    string  `json:"fund_type"`
	NAV         float64 `json:"nav"`
	AUM         float64 `json:"aum"`
	Popularity  float64 `json:"popularity"`

	Score     float64 `json:"score"`
	MatchType string  `json:"match_type"`

	Confidence      float64  `json:"confidence,omitempty"`
	HighlightedName string   `json:"highlighted_name,omitempty"`
	MatchedTokens   []string `json:"matched_tokens,omitempty"`
}

func resultsToJSON(results []result.Result) []resultJSON {
	out := make([]resultJSON, 0, len(results))
	for i := range results {
		r := &results[i]
		out = append(out, resultJSON{
			SchemeCode:      r.SchemeCode(),
			Name:            r.Name(),
			FundHouse:       r.FundHouse(),
			Category:        r.Category(),
			SubCategory:     r.SubCategory(),
			FundType:        r.FundType(),
			NAV:             r.NAV(),
			AUM:             r.AUM(),
			Popularity:      r.Popularity(),
			Score:           r.Score(),
			MatchType:       string(r.MatchType()),
			Confidence:      r.Confidence(),
			HighlightedName: r.HighlightedName(),
			MatchedTokens:   r.MatchedTokens(),
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}
