package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	limiter "github.com/ulule/limiter/v3"

	"github.com/noah-isme/backend-cetak/internal/config"
)

func TestNewLimiterStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewLimiterStore(client)
	require.NoError(t, err)

	lim := limiter.New(store, limiter.Rate{Period: time.Minute, Limit: 1})
	first, err := lim.Get(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	require.False(t, first.Reached)
	second, err := lim.Get(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	require.True(t, second.Reached)
}

func TestAsynqLoggerWritesLevels(t *testing.T) {
	var buf bytes.Buffer
	var l asynq.Logger = AsynqLogger{Logger: zerolog.New(&buf)}
	l.Warn("retrying task ", "catalog:variant.upserted")
	require.Contains(t, buf.String(), `"level":"warn"`)
	require.Contains(t, buf.String(), "retrying task catalog:variant.upserted")
}

func TestInitObservabilityTracingDisabled(t *testing.T) {
	cfg := &config.Config{Obs: config.Observability{MetricsNamespace: "cetak_app_test"}}
	shutdown := InitObservability(context.Background(), cfg, zerolog.Nop(), "cetak-test")
	require.NotNil(t, shutdown)
	shutdown(context.Background())
}

func TestNewLoggerAppliesLevel(t *testing.T) {
	cfg := &config.Config{AppEnv: "test", Obs: config.Observability{LogFormat: "json", LogLevel: "debug"}}
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	_ = NewLogger(cfg, "cetak-api")
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSyncRetryDelayGrowsToCap(t *testing.T) {
	cfg := &config.Config{SyncRetryBase: time.Second, SyncRetryMax: 10 * time.Second}
	delay := SyncRetryDelay(cfg)
	task := asynq.NewTask("catalog:variant.upserted", nil)

	first := delay(0, nil, task)
	require.GreaterOrEqual(t, first, 800*time.Millisecond)
	require.LessOrEqual(t, first, 1200*time.Millisecond)

	capped := delay(12, nil, task)
	require.LessOrEqual(t, capped, 12*time.Second)
	require.GreaterOrEqual(t, capped, 8*time.Second)
}
