package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/storm-data-cyclone-service/internal/adapter/http"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/adapter/jtwc"
	kafkaadapter "github.com/couchcryptid/storm-data-cyclone-service/internal/adapter/kafka"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/adapter/markup"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/config"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/observability"
	"github.com/couchcryptid/storm-data-cyclone-service/internal/tracker"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	client := jtwc.NewClient(cfg.FeedURL, cfg.FetchTimeout, metrics, logger)
	bulletins := jtwc.NewCachedFetcher(client, cfg.BulletinCacheSize, metrics)
	logger.Info("jtwc feed configured",
		"feed_url", cfg.FeedURL,
		"fetch_timeout", cfg.FetchTimeout,
		"fetch_concurrency", cfg.FetchConcurrency,
		"cache_size", cfg.BulletinCacheSize,
	)

	svc := tracker.NewService(client, bulletins, markup.NewHTMLLinks(), clock, logger, metrics, cfg.FetchConcurrency)
	writer := kafkaadapter.NewWriter(cfg, logger)
	poller := tracker.NewPoller(svc, writer, clock, cfg.PollInterval, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, poller, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start poller.
	go func() {
		if err := poller.Run(ctx); err != nil {
			logger.Error("poller error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
