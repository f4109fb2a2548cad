// fundex-loader ingests a JSON fund catalog into Redis and ensures the
// search index exists. Search terms are derived from the fund name so the
// prefix layer matches mid-name words.
//
// Usage:
//
//	fundex-loader -file funds.json -batch 500
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/arthaset/fundex/internal/config"
	dbRedis "github.com/arthaset/fundex/internal/db/redis"
	"github.com/arthaset/fundex/internal/domain/fund"
	logpkg "github.com/arthaset/fundex/internal/logger"
	catalogrepo "github.com/arthaset/fundex/internal/repository/catalog"
)

type loaderConfig struct {
	file  string
	batch int
}

func parseFlags() loaderConfig {
	cfg := loaderConfig{}
	flag.StringVar(&cfg.file, "file", "funds.json", "path to JSON fund catalog")
	flag.IntVar(&cfg.batch, "batch", 500, "funds per upsert pipeline")
	flag.Parse()
	return cfg
}

// fundRecord is the input file shape.
type fundRecord struct {
	SchemeCode  string   `json:"scheme_code"`
	Name        string   `json:"name"`
	FundHouse   string   `json:"fund_house"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category"`
	FundType    string   `json:"fund_type"`
	NAV         float64  `json:"nav"`
	AUM         float64  `json:"aum"`
	Popularity  float64  `json:"popularity"`
	Tags        []string `json:"tags"`
}

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, "fundex-loader:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg loaderConfig) error {
	env := config.GetEnv()

	appCfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, appCfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	records, err := readRecords(cfg.file)
	if err != nil {
		return err
	}
	logger.Info("Loaded fund catalog file",
		zap.String("file", cfg.file), zap.Int("funds", len(records)))

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    appCfg.Database.Addrs,
		Password: appCfg.Database.Password,
	})
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(appCfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	catalog := catalogrepo.New(store)
	if err := catalog.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	start := time.Now()
	total := 0
	for begin := 0; begin < len(records); begin += cfg.batch {
		end := min(begin+cfg.batch, len(records))

		batch := make([]fund.Fund, 0, end-begin)
		for _, rec := range records[begin:end] {
			batch = append(batch, toFund(rec))
		}
		if err := catalog.Upsert(ctx, batch); err != nil {
			return fmt.Errorf("upsert batch at %d: %w", begin, err)
		}
		total += len(batch)
		logger.Info("Upserted batch", zap.Int("count", len(batch)), zap.Int("total", total))
	}

	logger.Info("Catalog load complete",
		zap.Int("funds", total), zap.Duration("elapsed", time.Since(start)))
	return nil
}

func readRecords(path string) ([]fundRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []fundRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func toFund(rec fundRecord) fund.Fund {
	return fund.New(
		rec.SchemeCode, rec.Name, rec.FundHouse,
		rec.Category, rec.SubCategory, rec.FundType,
		rec.NAV, rec.AUM, rec.Popularity,
		rec.Tags, deriveSearchTerms(rec.Name),
	)
}

// deriveSearchTerms produces the name's words plus adjacent word bigrams,
// lowercased. "SBI Small Cap" yields sbi, small, cap, sbi small, small cap.
func deriveSearchTerms(name string) []string {
	words := strings.Fields(strings.ToLower(name))

	seen := make(map[string]struct{}, len(words)*2)
	terms := make([]string, 0, len(words)*2)
	add := func(t string) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}

	for _, w := range words {
		add(w)
	}
	for i := 0; i+1 < len(words); i++ {
		add(words[i] + " " + words[i+1])
	}
	return terms
}
