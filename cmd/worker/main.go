package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"talent-backend/internal/bootstrap"
	"talent-backend/internal/shared/config"
	"talent-backend/internal/shared/storage/db"
	"talent-backend/internal/shared/telemetry"
	"talent-backend/internal/workerproc"
)

const defaultWorkerConcurrency = 4

func main() {
	cfg := config.Load()
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		log.Fatal("REDIS_ADDR is required for the worker")
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	telemetry.SetLogger(logger)
	defer telemetry.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, db.DefaultWorkerOptions())
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()
	if app.Queue == nil {
		log.Fatal("redis queue unavailable")
	}

	worker := workerproc.NewWorker(app.Queue, app.AnalysisService)
	worker.Concurrency = envInt("WORKER_CONCURRENCY", defaultWorkerConcurrency)

	telemetry.Info("worker.start", map[string]any{
		"queue":       cfg.RedisQueueName,
		"concurrency": worker.Concurrency,
		"db":          app.DB != nil,
	})
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("worker error: %v", err)
	}
	telemetry.Info("worker.stop", nil)
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "production" || env == "staging" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return def
	}
	return val
}
