package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/noah-isme/backend-cetak/internal/app"
	"github.com/noah-isme/backend-cetak/internal/config"
)

const serviceName = "cetak-worker"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := app.NewLogger(cfg, serviceName).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := app.InitObservability(ctx, cfg, logger, serviceName)
	defer shutdownTracing(context.Background())

	startCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	deps, err := app.Build(startCtx, cfg, logger, serviceName)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise dependencies")
	}
	defer deps.Close()

	services, err := app.NewServices(deps)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise services")
	}
	processor, err := app.NewSyncProcessor(deps, services.Catalog)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog sync")
	}

	mux := asynq.NewServeMux()
	processor.Register(mux)

	srv := asynq.NewServer(deps.TaskRedis, asynq.Config{
		Concurrency:     cfg.SyncConcurrency,
		Queues:          map[string]int{cfg.SyncQueue: 1},
		Logger:          app.AsynqLogger{Logger: logger},
		ShutdownTimeout: 10 * time.Second,
		RetryDelayFunc:  app.SyncRetryDelay(cfg),
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			logger.Error().Err(err).Str("task", task.Type()).Msg("catalog sync task failed")
		}),
	})
	if err := srv.Start(mux); err != nil {
		logger.Fatal().Err(err).Msg("start worker")
	}
	logger.Info().Str("queue", cfg.SyncQueue).Int("concurrency", cfg.SyncConcurrency).Msg("worker starting")

	<-ctx.Done()
	srv.Shutdown()
	logger.Info().Msg("worker shutdown complete")
}
