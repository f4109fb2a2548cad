// Package search is the fund search and autocomplete engine: four retrieval
// layers fanned out against the catalog, merged, boosted, and cached.
package search

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arthaset/fundex/internal/domain/fund"
	"github.com/arthaset/fundex/internal/domain/search/options"
	"github.com/arthaset/fundex/internal/domain/search/result"
	"github.com/arthaset/fundex/internal/metrics"
)

const defaultLayerTimeout = 200 * time.Millisecond

// Config holds engine settings fixed at construction.
type Config struct {
	// EnableAdvancedSearch selects the platform-backed fuzzy/autocomplete
	// path. Read once per call; a mid-call config change never splits a call
	// across strategies.
	EnableAdvancedSearch bool
	// LayerTimeout bounds each match layer's catalog access.
	LayerTimeout time.Duration
}

// Service handles fund search and autocomplete. Stateless across calls; all
// shared state lives in the injected cache.
type Service struct {
	catalog Catalog
	cache   ResultCache
	cfg     Config
	logger  *zap.Logger
}

// New creates a search service.
func New(catalog Catalog, cache ResultCache, cfg Config, logger *zap.Logger) *Service {
	if cfg.LayerTimeout <= 0 {
		cfg.LayerTimeout = defaultLayerTimeout
	}
	return &Service{catalog: catalog, cache: cache, cfg: cfg, logger: logger}
}

// Search returns a ranked result list for a free-text query. It never fails:
// queries shorter than two characters return an empty list, and a degraded
// layer or cache only shrinks the candidate pool.
func (s *Service) Search(ctx context.Context, query string, opts options.Options) []result.Result {
	normalized, _ := normalizeQuery(query)
	if len(normalized) < minQueryLength {
		return nil
	}

	key := "search:" + normalized + "|" + opts.CacheKey()
	if cached, ok := s.cacheGet(ctx, key); ok {
		metrics.CacheHit("search")
		return cached
	}
	metrics.CacheMiss("search")

	// Strategy selection happens once per call.
	advanced := s.cfg.EnableAdvancedSearch && s.catalog.SupportsAdvancedSearch(ctx)

	f := opts.Filter()
	var exact, prefix, fuzzy, tag []result.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.runLayer(gctx, "exact", &exact, func(lctx context.Context) ([]result.Result, error) {
		return s.exactLayer(lctx, normalized, f)
	}))
	g.Go(s.runLayer(gctx, "prefix", &prefix, func(lctx context.Context) ([]result.Result, error) {
		return s.prefixLayer(lctx, normalized, f)
	}))
	_ = g.Wait()

	// Later layers only run when the cheap ones left the limit unsatisfied.
	if len(exact)+len(prefix) < opts.Limit() {
		g, gctx = errgroup.WithContext(ctx)
		if opts.EnableFuzzy() && len(normalized) >= minFuzzyQueryLength {
			g.Go(s.runLayer(gctx, "fuzzy", &fuzzy, func(lctx context.Context) ([]result.Result, error) {
				return s.fuzzyLayer(lctx, normalized, f, advanced)
			}))
		}
		if tags := detectIntents(normalized); len(tags) > 0 {
			g.Go(s.runLayer(gctx, "tag", &tag, func(lctx context.Context) ([]result.Result, error) {
				return s.tagLayer(lctx, tags, f)
			}))
		}
		_ = g.Wait()
	}

	candidates := make([]result.Result, 0, len(exact)+len(prefix)+len(fuzzy)+len(tag))
	candidates = append(candidates, exact...)
	candidates = append(candidates, prefix...)
	candidates = append(candidates, fuzzy...)
	candidates = append(candidates, tag...)

	merged := mergeResults(candidates, opts)
	s.cacheSet(ctx, key, merged)
	return merged
}

// cacheGet bounds the cache lookup the same way match layers are bounded,
// so a slow cache backend cannot stall the whole call.
func (s *Service) cacheGet(ctx context.Context, key string) ([]result.Result, bool) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.LayerTimeout)
	defer cancel()
	return s.cache.Get(cctx, key)
}

func (s *Service) cacheSet(ctx context.Context, key string, results []result.Result) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.LayerTimeout)
	defer cancel()
	s.cache.Set(cctx, key, results)
}

// runLayer wraps a match layer with its timeout, metrics, and failure
// swallowing. A failed layer is logged and contributes nothing; it never
// aborts sibling layers.
func (s *Service) runLayer(
	ctx context.Context, name string, out *[]result.Result,
	fn func(context.Context) ([]result.Result, error),
) func() error {
	return func() error {
		lctx, cancel := context.WithTimeout(ctx, s.cfg.LayerTimeout)
		defer cancel()

		start := time.Now()
		results, err := fn(lctx)
		metrics.ObserveLayer(name, time.Since(start))
		if err != nil {
			metrics.LayerFailed(name)
			s.logger.Warn("match layer failed, omitting from merge",
				zap.String("layer", name), zap.Error(err))
			return nil
		}
		*out = results
		return nil
	}
}

// tryCatalog runs a best-effort catalog lookup for the autocomplete path
// under the layer timeout, logging failures and returning no candidates.
func (s *Service) tryCatalog(
	ctx context.Context, op string, fn func(context.Context) ([]fund.Fund, error),
) []fund.Fund {
	lctx, cancel := context.WithTimeout(ctx, s.cfg.LayerTimeout)
	defer cancel()

	funds, err := fn(lctx)
	if err != nil {
		s.logger.Warn("catalog lookup failed", zap.String("op", op), zap.Error(err))
		return nil
	}
	return funds
}
