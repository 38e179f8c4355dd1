package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/backend-cetak/internal/app"
	"github.com/noah-isme/backend-cetak/internal/catalog"
	"github.com/noah-isme/backend-cetak/internal/catalogsync"
	"github.com/noah-isme/backend-cetak/internal/common"
	"github.com/noah-isme/backend-cetak/internal/config"
	"github.com/noah-isme/backend-cetak/internal/health"
	"github.com/noah-isme/backend-cetak/internal/obs"
	"github.com/noah-isme/backend-cetak/internal/product"
	"github.com/noah-isme/backend-cetak/internal/quote"
	"github.com/noah-isme/backend-cetak/internal/ratelimit"
	"github.com/noah-isme/backend-cetak/internal/rules"
	"github.com/noah-isme/backend-cetak/internal/security"
)

const serviceName = "cetak-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := app.NewLogger(cfg, serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := app.InitObservability(ctx, cfg, logger, serviceName)
	defer shutdownTracing(context.Background())

	if cfg.MigrateOnStart {
		if err := app.Migrate(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("run migrations")
		}
	}

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

	taskClient := asynq.NewClient(deps.TaskRedis)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	limiterStore, err := app.NewLimiterStore(deps.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise rate limiter")
	}
	pricingLimit := ratelimit.New(limiterStore, cfg.PricingRateLimit, cfg.PricingRateWindow, ratelimit.Config{Prefix: "pricing:"})
	pricingLimit.OnError = func(err error) {
		logger.Warn().Err(err).Msg("rate limiter unavailable")
	}

	catalogHandler := catalog.NewHandler(catalog.HandlerConfig{Service: services.Catalog})
	productHandler := product.NewHandler(services.Products)
	rulesHandler := rules.NewHandler(rules.HandlerConfig{Service: services.Rules})
	quoteHandler := quote.NewHandler(quote.HandlerConfig{
		Service:   services.Quotes,
		Validator: quote.NewValidator(deps.Validator),
	})
	syncHandler := catalogsync.NewHandler(catalogsync.HandlerConfig{
		Enqueuer: taskClient,
		Validate: deps.Validator,
		Queue:    cfg.SyncQueue,
		MaxRetry: cfg.SyncMaxRetry,
		Logger:   logger.With().Str("component", "catalogsync").Logger(),
	})
	idem := common.Idem{R: deps.Redis, TTL: cfg.IdempotencyTTL}
	adminToken := security.SharedToken{Token: cfg.SyncWebhookToken}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Obs.EnableTracing {
		r.Use(obs.Tracing)
	}
	if cfg.Obs.EnablePrometheus {
		r.Use(obs.NewHTTPMetrics(cfg.Obs.MetricsNamespace, cfg.Obs.MetricsBuckets, nil).Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger, Quiet: []string{"/health/", "/metrics"}}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Sync-Token"},
		ExposedHeaders: []string{"Location", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(security.Headers{
		Enable:            cfg.SecurityHeadersEnabled,
		EnableHSTS:        cfg.EnableHSTS,
		HSTSMaxAge:        31536000,
		CacheablePrefixes: []string{"/api/v1/papers", "/api/v1/products/"},
		CacheMaxAge:       time.Minute,
	}.Middleware)
	r.Use(security.JSONBody{MaxBytes: cfg.HTTPMaxBodyBytes}.Middleware)

	if cfg.Obs.EnablePrometheus {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{Checker: health.Probes{DB: deps.DB, Redis: deps.Redis}}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		catalogHandler.Register(v)
		v.Get("/products/{id}", productHandler.Product)

		v.Route("/pricing", func(p chi.Router) {
			p.Use(pricingLimit.Middleware)
			p.Post("/book", quoteHandler.PriceBook)
			p.Post("/products", quoteHandler.PriceProduct)
		})

		v.Route("/quotes", func(q chi.Router) {
			q.With(pricingLimit.Middleware, idem.Middleware).Post("/", quoteHandler.Create)
			q.Get("/{id}", quoteHandler.Get)
			q.With(idem.Middleware).Patch("/{id}/status", quoteHandler.UpdateStatus)
			q.Get("/{id}/events", quoteHandler.Events)
		})

		v.Route("/admin", func(admin chi.Router) {
			admin.Use(adminToken.Middleware)
			admin.Get("/rules", rulesHandler.Get)
			admin.Put("/rules", rulesHandler.Put)
			admin.Post("/catalog/events", syncHandler.Events)
		})
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
		return
	case <-ctx.Done():
	}

	health.SetReady(false)
	logger.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
