package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scoregate/internal/platform/config"
	"scoregate/internal/platform/health"
	"scoregate/internal/platform/logger"
	"scoregate/internal/platform/metrics"
	platformredis "scoregate/internal/platform/redis"
	"scoregate/internal/rpc"
	"scoregate/internal/rpc/handler"
	"scoregate/internal/scoring"
	"scoregate/internal/scoring/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	log.Info("initializing scoregate",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	healthHandler := health.New(cfg.Environment)

	var st scoring.Store
	if cfg.Redis.URL != "" {
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close() //nolint:errcheck

		healthHandler.RegisterCheck("redis", func() error {
			return client.Health(context.Background())
		})
		go recordPoolStats(client)

		st = store.NewRedis(client, cfg.StoreTimeout)
	} else {
		log.Warn("REDIS_URL not set, using in-memory store")
		st = store.NewMemory()
	}

	engine, err := scoring.New(st, scoring.WithLogger(log), scoring.WithMetrics(m))
	if err != nil {
		log.Error("failed to build scoring engine", "error", err)
		os.Exit(1)
	}

	service, err := rpc.New(engine,
		rpc.Config{Salt: cfg.Salt, AdminSalt: cfg.AdminSalt},
		rpc.WithLogger(log),
		rpc.WithMetrics(m),
	)
	if err != nil {
		log.Error("failed to build dispatcher", "error", err)
		os.Exit(1)
	}

	h, err := handler.New(service, handler.WithLogger(log), handler.WithMetrics(m))
	if err != nil {
		log.Error("failed to build handler", "error", err)
		os.Exit(1)
	}

	router := handler.NewRouter(h, healthHandler, log)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func recordPoolStats(client *platformredis.Client) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		client.RecordPoolStats()
	}
}
