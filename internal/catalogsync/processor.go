package catalogsync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	dbgen "github.com/noah-isme/backend-cetak/internal/db/gen"
	"github.com/noah-isme/backend-cetak/internal/obs"
	"github.com/noah-isme/backend-cetak/internal/pricing"
)

const uniqueViolation = "23505"

type queryProvider interface {
	UpsertPaperStock(ctx context.Context, arg dbgen.UpsertPaperStockParams) (dbgen.PaperStock, error)
	DeletePaperStockByVariant(ctx context.Context, variantID pgtype.Text) ([]string, error)
	DeletePaperStocksByProduct(ctx context.Context, productID pgtype.Text) ([]string, error)
}

type locker interface {
	WithLock(ctx context.Context, key string, fn func(context.Context) error) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, skus ...string) error
}

// Processor applies catalog events to the paper_stocks table.
type Processor struct {
	queries queryProvider
	locker  locker
	cache   cacheInvalidator
	logger  zerolog.Logger
}

// ProcessorConfig groups Processor dependencies. Locker and Cache are
// optional.
type ProcessorConfig struct {
	Queries queryProvider
	Locker  locker
	Cache   cacheInvalidator
	Logger  zerolog.Logger
}

// NewProcessor constructs a Processor.
func NewProcessor(cfg ProcessorConfig) (*Processor, error) {
	if cfg.Queries == nil {
		return nil, errors.New("catalogsync: queries provider is required")
	}
	return &Processor{queries: cfg.Queries, locker: cfg.Locker, cache: cfg.Cache, logger: cfg.Logger}, nil
}

// Register binds every task type to its handler.
func (p *Processor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeVariantUpserted, p.HandleVariantUpserted)
	mux.HandleFunc(TypeVariantDeleted, p.HandleVariantDeleted)
	mux.HandleFunc(TypeProductDeleted, p.HandleProductDeleted)
}

// HandleVariantUpserted creates or refreshes the paper stock for a variant.
func (p *Processor) HandleVariantUpserted(ctx context.Context, t *asynq.Task) error {
	ev, err := decodeEvent(t)
	if err != nil {
		return p.finish(EventVariantUpserted, err)
	}
	params, err := upsertParams(ev)
	if err != nil {
		return p.finish(ev.Type, err)
	}
	var stale []string
	err = p.serialise(ctx, ev.ProductID, func(ctx context.Context) error {
		_, err := p.queries.UpsertPaperStock(ctx, params)
		if !isVariantConflict(err) {
			return err
		}
		// The variant moved to a new SKU; drop its old row and retry.
		stale, err = p.queries.DeletePaperStockByVariant(ctx, params.VariantID)
		if err != nil {
			return err
		}
		_, err = p.queries.UpsertPaperStock(ctx, params)
		return err
	})
	if err != nil {
		return p.finish(ev.Type, fmt.Errorf("upsert paper %s: %w", params.Sku, err))
	}
	p.invalidate(ctx, append(stale, params.Sku)...)
	p.logger.Info().Str("sku", params.Sku).Str("variant_id", ev.VariantID).Msg("paper stock synced")
	return p.finish(ev.Type, nil)
}

// HandleVariantDeleted removes the paper stock owned by a variant.
func (p *Processor) HandleVariantDeleted(ctx context.Context, t *asynq.Task) error {
	ev, err := decodeEvent(t)
	if err != nil {
		return p.finish(EventVariantDeleted, err)
	}
	if strings.TrimSpace(ev.VariantID) == "" {
		return p.finish(ev.Type, fmt.Errorf("variant id missing: %w", asynq.SkipRetry))
	}
	var removed []string
	err = p.serialise(ctx, ev.ProductID, func(ctx context.Context) error {
		removed, err = p.queries.DeletePaperStockByVariant(ctx, pgtype.Text{String: ev.VariantID, Valid: true})
		return err
	})
	if err != nil {
		return p.finish(ev.Type, fmt.Errorf("delete variant %s: %w", ev.VariantID, err))
	}
	p.invalidate(ctx, removed...)
	return p.finish(ev.Type, nil)
}

// HandleProductDeleted removes every paper stock of a product.
func (p *Processor) HandleProductDeleted(ctx context.Context, t *asynq.Task) error {
	ev, err := decodeEvent(t)
	if err != nil {
		return p.finish(EventProductDeleted, err)
	}
	if strings.TrimSpace(ev.ProductID) == "" {
		return p.finish(ev.Type, fmt.Errorf("product id missing: %w", asynq.SkipRetry))
	}
	var removed []string
	err = p.serialise(ctx, ev.ProductID, func(ctx context.Context) error {
		removed, err = p.queries.DeletePaperStocksByProduct(ctx, pgtype.Text{String: ev.ProductID, Valid: true})
		return err
	})
	if err != nil {
		return p.finish(ev.Type, fmt.Errorf("delete product %s: %w", ev.ProductID, err))
	}
	p.invalidate(ctx, removed...)
	p.logger.Info().Str("product_id", ev.ProductID).Int("removed", len(removed)).Msg("product papers removed")
	return p.finish(ev.Type, nil)
}

func (p *Processor) serialise(ctx context.Context, productID string, fn func(context.Context) error) error {
	if p.locker == nil {
		return fn(ctx)
	}
	return p.locker.WithLock(ctx, "catalogsync:product:"+productID, fn)
}

func (p *Processor) invalidate(ctx context.Context, skus ...string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Invalidate(ctx, skus...); err != nil {
		p.logger.Warn().Err(err).Strs("skus", skus).Msg("catalog cache not invalidated")
	}
}

func (p *Processor) finish(eventType string, err error) error {
	switch {
	case err == nil:
		obs.ObserveCatalogSync(eventType, "ok")
	case errors.Is(err, asynq.SkipRetry):
		obs.ObserveCatalogSync(eventType, "skipped")
		p.logger.Warn().Err(err).Str("type", eventType).Msg("catalog event dropped")
	default:
		obs.ObserveCatalogSync(eventType, "error")
	}
	return err
}

func upsertParams(ev Event) (dbgen.UpsertPaperStockParams, error) {
	sku := strings.TrimSpace(ev.SKU)
	if sku == "" || ev.Paper == nil {
		return dbgen.UpsertPaperStockParams{}, fmt.Errorf("variant %s has no sku or paper details: %w", ev.VariantID, asynq.SkipRetry)
	}
	d := ev.Paper
	usage := pricing.PaperUsage(d.Usage)
	switch usage {
	case pricing.UsageBWText, pricing.UsageInternalColor, pricing.UsageCovers:
	default:
		return dbgen.UpsertPaperStockParams{}, fmt.Errorf("unknown paper usage %q: %w", d.Usage, asynq.SkipRetry)
	}
	paperType := pricing.PaperType(d.Type)
	if paperType != pricing.PaperCoated && paperType != pricing.PaperUncoated {
		return dbgen.UpsertPaperStockParams{}, fmt.Errorf("unknown paper type %q: %w", d.Type, asynq.SkipRetry)
	}
	if d.GSM <= 0 || d.ParentWidth <= 0 || d.ParentHeight <= 0 || d.CostPerM < 0 {
		return dbgen.UpsertPaperStockParams{}, fmt.Errorf("paper %s has invalid dimensions or cost: %w", sku, asynq.SkipRetry)
	}
	return dbgen.UpsertPaperStockParams{
		Sku:          sku,
		Name:         ev.Name(),
		Gsm:          d.GSM,
		PaperType:    string(paperType),
		Finish:       d.Finish,
		ParentWidth:  d.ParentWidth,
		ParentHeight: d.ParentHeight,
		CostPerSheet: d.CostPerM / 1000,
		Usage:        string(usage),
		ProductID:    pgtype.Text{String: ev.ProductID, Valid: ev.ProductID != ""},
		VariantID:    pgtype.Text{String: ev.VariantID, Valid: ev.VariantID != ""},
	}, nil
}

func isVariantConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "paper_stocks_variant_id_key"
}
