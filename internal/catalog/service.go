package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/backend-cetak/internal/common"
	dbgen "github.com/noah-isme/backend-cetak/internal/db/gen"
	"github.com/noah-isme/backend-cetak/internal/obs"
	"github.com/noah-isme/backend-cetak/internal/pricing"
	"github.com/noah-isme/backend-cetak/internal/resilience"
)

type queryProvider interface {
	GetPaperStock(ctx context.Context, sku string) (dbgen.PaperStock, error)
	ListPaperStocks(ctx context.Context, usage pgtype.Text) ([]dbgen.PaperStock, error)
}

// Service resolves paper SKUs against Postgres with a Redis read-through cache.
type Service struct {
	queries       queryProvider
	cache         *Cache
	logger        zerolog.Logger
	lookupTimeout time.Duration
	breaker       *resilience.Breaker
}

// ServiceConfig groups Service dependencies. Breaker, when set, guards
// single-stock reads from Postgres.
type ServiceConfig struct {
	Queries       queryProvider
	Cache         *Cache
	Logger        zerolog.Logger
	LookupTimeout time.Duration
	Breaker       *resilience.Breaker
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("catalog: queries provider is required")
	}
	return &Service{
		queries:       cfg.Queries,
		cache:         cfg.Cache,
		logger:        cfg.Logger,
		lookupTimeout: cfg.LookupTimeout,
		breaker:       cfg.Breaker,
	}, nil
}

// ParseUsage validates a usage filter. Empty means every usage.
func ParseUsage(raw string) (pricing.PaperUsage, error) {
	usage := pricing.PaperUsage(strings.TrimSpace(raw))
	switch usage {
	case "", pricing.UsageBWText, pricing.UsageInternalColor, pricing.UsageCovers:
		return usage, nil
	}
	return "", common.InvalidArgument("unknown paper usage", nil).WithDetails(map[string]any{"usage": raw})
}

// GetPaper returns one paper stock or a NOT_FOUND error.
func (s *Service) GetPaper(ctx context.Context, sku string) (pricing.PaperStock, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return pricing.PaperStock{}, common.InvalidArgument("sku is required", nil)
	}
	var cached pricing.PaperStock
	if ok, err := s.cache.GetJSON(ctx, skuCacheKey(sku), &cached); err != nil {
		s.logger.Warn().Err(err).Str("sku", sku).Msg("catalog cache read failed")
	} else if ok {
		return cached, nil
	}

	var row dbgen.PaperStock
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		var qerr error
		row, qerr = s.queries.GetPaperStock(ctx, sku)
		return qerr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pricing.PaperStock{}, common.NotFound("paper stock not found", err)
		}
		return pricing.PaperStock{}, fmt.Errorf("get paper stock: %w", err)
	}
	stock := toPaperStock(row)
	if err := s.cache.SetJSON(ctx, skuCacheKey(sku), stock); err != nil {
		s.logger.Warn().Err(err).Str("sku", sku).Msg("catalog cache write failed")
	}
	return stock, nil
}

// ListPapers returns stocks offered in the given usage, or all stocks.
func (s *Service) ListPapers(ctx context.Context, usage pricing.PaperUsage) ([]pricing.PaperStock, error) {
	key := usageCacheKey(usage)
	var cached []pricing.PaperStock
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
	} else if ok {
		return cached, nil
	}

	filter := pgtype.Text{String: string(usage), Valid: usage != ""}
	rows, err := s.queries.ListPaperStocks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list paper stocks: %w", err)
	}
	result := make([]pricing.PaperStock, 0, len(rows))
	for _, row := range rows {
		result = append(result, toPaperStock(row))
	}
	if err := s.cache.SetJSON(ctx, key, result); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
	return result, nil
}

// Resolve looks up the three paper slots of a job concurrently. A slot whose
// SKU is empty, unknown or whose lookup fails is left empty. Only cancellation
// of ctx is reported as an error.
func (s *Service) Resolve(ctx context.Context, job pricing.JobSpecification) (pricing.Papers, error) {
	lookupCtx := ctx
	if s.lookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
	}

	var papers pricing.Papers
	g, gctx := errgroup.WithContext(lookupCtx)
	slots := []struct {
		name string
		sku  string
		dst  *pricing.PaperOption
	}{
		{"bw", job.BWPaperSKU, &papers.BW},
		{"color", job.ColorPaperSKU, &papers.Color},
		{"cover", job.CoverPaperSKU, &papers.Cover},
	}
	for _, slot := range slots {
		slot := slot
		if strings.TrimSpace(slot.sku) == "" {
			*slot.dst = pricing.None()
			continue
		}
		g.Go(func() error {
			*slot.dst = s.resolveSlot(gctx, slot.name, slot.sku)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return pricing.Papers{}, err
	}
	return papers, nil
}

func (s *Service) resolveSlot(ctx context.Context, slot, sku string) pricing.PaperOption {
	stock, err := s.GetPaper(ctx, sku)
	if err == nil {
		obs.ObserveCatalogLookup(slot, "hit")
		return pricing.Some(stock)
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) && appErr.Code == common.CodeNotFound {
		obs.ObserveCatalogLookup(slot, "miss")
		s.logger.Warn().Str("slot", slot).Str("sku", sku).Msg("paper sku not in catalog; slot skipped")
		return pricing.None()
	}
	obs.ObserveCatalogLookup(slot, "error")
	s.logger.Warn().Err(err).Str("slot", slot).Str("sku", sku).Msg("paper lookup failed; slot skipped")
	return pricing.None()
}

// Invalidate drops cached entries for the given SKUs and every usage list.
func (s *Service) Invalidate(ctx context.Context, skus ...string) error {
	keys := listCacheKeys()
	for _, sku := range skus {
		if sku = strings.TrimSpace(sku); sku != "" {
			keys = append(keys, skuCacheKey(sku))
		}
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}

func toPaperStock(row dbgen.PaperStock) pricing.PaperStock {
	return pricing.PaperStock{
		SKU:          row.Sku,
		Name:         row.Name,
		GSM:          row.Gsm,
		Type:         pricing.PaperType(row.PaperType),
		Finish:       row.Finish,
		ParentWidth:  row.ParentWidth,
		ParentHeight: row.ParentHeight,
		CostPerSheet: row.CostPerSheet,
		Usage:        pricing.PaperUsage(row.Usage),
	}
}

// IsStoreFailure reports whether err from a paper stock read means the store
// is unhealthy. Missing rows are normal traffic.
func IsStoreFailure(err error) bool {
	return !errors.Is(err, pgx.ErrNoRows)
}
