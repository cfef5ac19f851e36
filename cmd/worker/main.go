package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leadcrm_backend/internal/audit"
	"leadcrm_backend/platform/config"
	"leadcrm_backend/platform/db"
	"leadcrm_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting audit worker", "env", cfg.Env, "queue", cfg.AuditQueueName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	worker, err := audit.NewWorker(cfg, pool, log)
	if err != nil {
		log.Error("failed to initialize audit worker", "error", err)
		panic("failed to initialize audit worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("audit worker stopped")
}
