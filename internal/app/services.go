package app

import (
	"fmt"

	"github.com/noah-isme/backend-cetak/internal/catalog"
	"github.com/noah-isme/backend-cetak/internal/catalogsync"
	"github.com/noah-isme/backend-cetak/internal/events"
	"github.com/noah-isme/backend-cetak/internal/lock"
	"github.com/noah-isme/backend-cetak/internal/pricing"
	"github.com/noah-isme/backend-cetak/internal/product"
	"github.com/noah-isme/backend-cetak/internal/quote"
	"github.com/noah-isme/backend-cetak/internal/resilience"
	"github.com/noah-isme/backend-cetak/internal/rules"
)

// Services are the domain services built over Dependencies.
type Services struct {
	Catalog  *catalog.Service
	Rules    *rules.Service
	Products *product.Service
	Events   *events.Bus
	Quotes   *quote.Service
}

// NewServices wires the domain services.
func NewServices(d *Dependencies) (*Services, error) {
	cfg := d.Config

	catalogSvc, err := catalog.NewService(catalog.ServiceConfig{
		Queries:       d.Queries,
		Cache:         catalog.NewCache(d.Redis, cfg.CatalogCacheTTL),
		Logger:        d.Logger.With().Str("component", "catalog").Logger(),
		LookupTimeout: cfg.CatalogLookupTimeout,
		Breaker: resilience.NewBreaker(resilience.Options{
			Target:       "paper_stocks",
			MinRequests:  cfg.CatalogBreakerMinRequests,
			FailureRatio: cfg.CatalogBreakerFailureRatio,
			Cooldown:     cfg.CatalogBreakerCooldown,
			Logger:       d.Logger,
			IsFailure:    catalog.IsStoreFailure,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("initialise catalog service: %w", err)
	}

	rulesSvc, err := rules.NewService(rules.ServiceConfig{
		Queries:    d.Queries,
		Redis:      d.Redis,
		TTL:        cfg.RulesCacheTTL,
		DocumentID: cfg.RulesDocumentID,
		Logger:     d.Logger.With().Str("component", "rules").Logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("initialise rules service: %w", err)
	}

	productSvc, err := product.NewService(d.Queries)
	if err != nil {
		return nil, fmt.Errorf("initialise product service: %w", err)
	}

	bus := &events.Bus{
		Store:     d.Queries,
		Notifiers: []events.Notifier{events.LogNotifier{Logger: d.Logger}},
	}

	quoteSvc, err := quote.NewService(quote.ServiceConfig{
		Pricers: []quote.Pricer{
			quote.BookPricer{
				Papers: catalogSvc,
				Rules:  rulesSvc,
				Delivery: pricing.DeliveryPolicy{
					HoursPerDay:  cfg.DeliveryHoursPerDay,
					ShippingDays: cfg.DeliveryShippingDays,
				},
			},
			quote.OptionPricer{
				Products:     productSvc,
				ShippingDays: cfg.DeliveryShippingDays,
			},
		},
		Queries: d.Queries,
		Events:  bus,
		Logger:  d.Logger.With().Str("component", "quote").Logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("initialise quote service: %w", err)
	}

	return &Services{
		Catalog:  catalogSvc,
		Rules:    rulesSvc,
		Products: productSvc,
		Events:   bus,
		Quotes:   quoteSvc,
	}, nil
}

// NewSyncProcessor wires the catalog sync worker.
func NewSyncProcessor(d *Dependencies, catalogSvc *catalog.Service) (*catalogsync.Processor, error) {
	return catalogsync.NewProcessor(catalogsync.ProcessorConfig{
		Queries: d.Queries,
		Locker: lock.New(d.Redis, lock.Options{
			Prefix:       "cetak:lock:",
			TTL:          d.Config.LockTTL,
			RetryBackoff: d.Config.LockRetryBackoff,
		}),
		Cache:  catalogSvc,
		Logger: d.Logger.With().Str("component", "catalogsync").Logger(),
	})
}
