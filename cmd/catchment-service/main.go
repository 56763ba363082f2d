package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/catchment-param-service/internal/adapter/cache"
	httpadapter "github.com/couchcryptid/catchment-param-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/catchment-param-service/internal/adapter/kafka"
	"github.com/couchcryptid/catchment-param-service/internal/adapter/sqlite"
	"github.com/couchcryptid/catchment-param-service/internal/config"
	"github.com/couchcryptid/catchment-param-service/internal/domain"
	"github.com/couchcryptid/catchment-param-service/internal/observability"
	"github.com/couchcryptid/catchment-param-service/internal/pipeline"
	"github.com/couchcryptid/catchment-param-service/internal/rulebank"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	estimator, err := newEstimator(cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to build estimator", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(estimator, logger)

	var (
		loader  pipeline.BatchLoader = writer
		store   *sqlite.ResultStore
		srvOpts []httpadapter.Option
	)
	if cfg.ResultsDB != "" {
		store, err = sqlite.Open(ctx, cfg.ResultsDB, logger)
		if err != nil {
			logger.Error("failed to open results db", "error", err, "path", cfg.ResultsDB)
			os.Exit(1)
		}
		loader = pipeline.NewMultiLoader(writer, store)
		srvOpts = append(srvOpts, httpadapter.WithResults(store))
		logger.Info("result store enabled", "path", cfg.ResultsDB)
	}

	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, estimator, logger, srvOpts...)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("result store close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// newEstimator loads the rule bank, reports its lint findings and wraps the
// calculator in the estimate cache.
func newEstimator(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (domain.Estimator, error) {
	reg, err := domain.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	loaded, err := rulebank.Resolve(cfg.RulesFile, reg, domain.DefaultRuleBank)
	if err != nil {
		return nil, err
	}

	source := cfg.RulesFile
	if source == "" {
		source = "built-in"
	}
	logger.Info("rule bank loaded", "source", source, "rules", loaded.Bank.Len(), "lint_warnings", len(loaded.Warnings))
	for _, w := range loaded.Warnings {
		logger.Warn("rule lint", "kind", string(w.Kind), "output", w.Output, "rules", w.Rules[:], "detail", w.Message)
	}
	metrics.RulesLoaded.Set(float64(loaded.Bank.Len()))
	metrics.LintWarnings.Set(float64(len(loaded.Warnings)))

	calc, err := domain.NewCalculator(loaded.Bank)
	if err != nil {
		return nil, err
	}
	calc = calc.WithObserver(func(output string, elapsed time.Duration) {
		metrics.InferenceDuration.WithLabelValues(output).Observe(elapsed.Seconds())
	})

	cached, err := cache.NewCachedEstimator(calc, cfg.CacheSize, metrics)
	if err != nil {
		return nil, err
	}
	return cached, nil
}
