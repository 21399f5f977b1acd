package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"talent-backend/internal/bootstrap"
	"talent-backend/internal/shared/config"
	"talent-backend/internal/shared/server"
	"talent-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	telemetry.SetLogger(logger)
	defer telemetry.Sync()

	app, err := bootstrap.BuildServer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{
		"addr":  addr,
		"env":   cfg.Env,
		"db":    app.DB != nil,
		"queue": app.Queue != nil,
	})
	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "production" || env == "staging" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
