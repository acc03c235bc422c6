package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chronostack/chronostack/internal/api"
	"github.com/chronostack/chronostack/internal/chronology"
	"github.com/chronostack/chronostack/internal/config"
	"github.com/chronostack/chronostack/internal/dispatch"
	"github.com/chronostack/chronostack/internal/metrics"
	"github.com/chronostack/chronostack/internal/queue"
	"github.com/chronostack/chronostack/internal/store"
	"github.com/chronostack/chronostack/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("chronocalc starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Calc.HTTPPort,
		"collector_url", cfg.Calc.CollectorURL,
		"dispatch_attempts", cfg.Calc.Dispatch.Attempts,
		"queue_workers", cfg.Calc.Queue.Workers,
		"record_ttl", cfg.Calc.Records.TTL,
	)
	if cfg.Calc.Auth.Token() == "" {
		slog.Warn("auth token is empty — inbound requests without a token will be accepted",
			"token_env", cfg.Calc.Auth.TokenEnv)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Record store with background TTL eviction.
	st := store.New(cfg.Calc.Records.TTL)
	go st.Run(ctx)

	// Watch config file for hot-reload (logs only in this phase).
	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			slog.Info("config hot-reloaded", "http_port", updated.Calc.HTTPPort)
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	m := metrics.New()
	fb := chronology.NewFallback()
	dispatcher := dispatch.New(cfg.Calc)
	q := queue.New(cfg.Calc.Queue, fb, dispatcher, st, m)

	// WebSocket hub — broadcasts calculation records to observers.
	hub := ws.New(st, cfg.Calc.BroadcastInterval)
	go hub.Run(ctx)

	httpMux := http.NewServeMux()
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/", api.New(cfg.Calc, fb, dispatcher, st, q, m))

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Calc.HTTPPort),
		Handler: httpMux,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("calculation workers starting", "workers", cfg.Calc.Queue.Workers)
		return q.Run(gctx)
	})

	g.Go(func() error {
		slog.Info("HTTP server listening", "port", cfg.Calc.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("chronocalc shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("chronocalc stopped", "err", err)
		os.Exit(1)
	}
}
