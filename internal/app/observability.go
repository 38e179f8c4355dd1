package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-cetak/internal/config"
	"github.com/noah-isme/backend-cetak/internal/obs"
	"github.com/noah-isme/backend-cetak/internal/resilience"
)

// NewLogger builds the process logger from configuration.
func NewLogger(cfg *config.Config, serviceName string) zerolog.Logger {
	return obs.NewLogger(cfg.Obs.LogFormat, cfg.Obs.LogLevel).
		With().
		Str("service", serviceName).
		Str("env", cfg.AppEnv).
		Logger()
}

// InitObservability registers domain metrics and starts tracing when enabled.
// The returned function flushes the tracer and is always safe to call.
func InitObservability(ctx context.Context, cfg *config.Config, logger zerolog.Logger, serviceName string) func(context.Context) {
	if cfg.Obs.EnablePrometheus {
		obs.MustRegisterDomainMetrics(cfg.Obs.MetricsNamespace, nil)
		resilience.MustRegisterMetrics(cfg.Obs.MetricsNamespace, nil)
	}
	noop := func(context.Context) {}
	if !cfg.Obs.EnableTracing {
		return noop
	}
	shutdown, err := obs.InitTracer(ctx, obs.TracingConfig{
		ServiceName:   serviceName,
		Endpoint:      cfg.Obs.OTLPEndpoint,
		Exporter:      cfg.Obs.TracingExporter,
		SamplingRatio: cfg.Obs.SamplingRatio,
		Environment:   cfg.AppEnv,
	})
	if err != nil {
		logger.Error().Err(err).Msg("initialise tracing")
		cfg.Obs.EnableTracing = false
		return noop
	}
	return func(ctx context.Context) {
		if err := shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown tracer")
		}
	}
}

// AsynqLogger adapts zerolog to asynq's logger interface.
type AsynqLogger struct {
	Logger zerolog.Logger
}

func (l AsynqLogger) Debug(args ...any) { l.Logger.Debug().Msg(fmt.Sprint(args...)) }
func (l AsynqLogger) Info(args ...any)  { l.Logger.Info().Msg(fmt.Sprint(args...)) }
func (l AsynqLogger) Warn(args ...any)  { l.Logger.Warn().Msg(fmt.Sprint(args...)) }
func (l AsynqLogger) Error(args ...any) { l.Logger.Error().Msg(fmt.Sprint(args...)) }
func (l AsynqLogger) Fatal(args ...any) { l.Logger.Fatal().Msg(fmt.Sprint(args...)) }

// SyncRetryDelay spaces catalog sync retries exponentially.
func SyncRetryDelay(cfg *config.Config) asynq.RetryDelayFunc {
	return func(n int, _ error, _ *asynq.Task) time.Duration {
		return resilience.Backoff(cfg.SyncRetryBase, cfg.SyncRetryMax, n+1, 0.2)
	}
}
