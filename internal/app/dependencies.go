package app

import (
	"context"
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	limiter "github.com/ulule/limiter/v3"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/noah-isme/backend-cetak/internal/common"
	"github.com/noah-isme/backend-cetak/internal/config"
	"github.com/noah-isme/backend-cetak/internal/db"
	dbgen "github.com/noah-isme/backend-cetak/internal/db/gen"
	"github.com/noah-isme/backend-cetak/internal/obs"
)

// Dependencies holds the connections shared by the API and the worker.
type Dependencies struct {
	Config    *config.Config
	Logger    zerolog.Logger
	DB        *pgxpool.Pool
	Queries   *dbgen.Queries
	Redis     *redis.Client
	Validator *validator.Validate
	TaskRedis asynq.RedisConnOpt

	closers []func()
}

// Build connects to Postgres and Redis and verifies both respond. The
// returned Dependencies must be closed by the caller.
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger, serviceName string) (*Dependencies, error) {
	d := &Dependencies{
		Config:    cfg,
		Logger:    logger,
		Validator: common.NewValidator(),
	}

	pool, err := newPool(ctx, cfg, logger, serviceName)
	if err != nil {
		return nil, err
	}
	d.DB = pool
	d.Queries = dbgen.New(pool)
	d.closers = append(d.closers, pool.Close)

	rdb, err := newRedis(ctx, cfg, logger)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.Redis = rdb
	d.closers = append(d.closers, func() {
		if err := rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	})

	taskRedis, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("parse task redis url: %w", err)
	}
	d.TaskRedis = taskRedis
	return d, nil
}

// Close releases connections in reverse order of creation.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

func newPool(ctx context.Context, cfg *config.Config, logger zerolog.Logger, serviceName string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.ConnConfig.Tracer = &obs.DBTracer{
		Logger:    logger.With().Str("component", "db").Logger(),
		SlowQuery: cfg.DBSlowQuery,
	}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = serviceName

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func newRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if cfg.Obs.EnableTracing {
		if err := redisotel.InstrumentTracing(client); err != nil {
			logger.Error().Err(err).Msg("instrument redis tracing")
		}
	}
	if cfg.Obs.EnablePrometheus {
		if err := redisotel.InstrumentMetrics(client); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewLimiterStore wires a rate limiter store backed by Redis.
func NewLimiterStore(rdb *redis.Client) (limiter.Store, error) {
	return limiterredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "cetak:ratelimit"})
}

// RunMigrations applies pending migrations; an up-to-date schema is not an error.
func RunMigrations(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Migrate applies the embedded schema to databaseURL.
func Migrate(databaseURL string) error {
	m, err := db.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()
	return RunMigrations(m)
}
