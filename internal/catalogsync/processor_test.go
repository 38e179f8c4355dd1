package catalogsync

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	dbgen "github.com/noah-isme/backend-cetak/internal/db/gen"
	"github.com/noah-isme/backend-cetak/internal/lock"
)

type fakeQueries struct {
	mu      sync.Mutex
	rows    map[string]dbgen.PaperStock
	failErr error
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{rows: map[string]dbgen.PaperStock{}}
}

func (f *fakeQueries) UpsertPaperStock(_ context.Context, arg dbgen.UpsertPaperStockParams) (dbgen.PaperStock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return dbgen.PaperStock{}, f.failErr
	}
	for sku, row := range f.rows {
		if sku != arg.Sku && row.VariantID.Valid && row.VariantID == arg.VariantID {
			return dbgen.PaperStock{}, &pgconn.PgError{Code: "23505", ConstraintName: "paper_stocks_variant_id_key"}
		}
	}
	row := dbgen.PaperStock{
		Sku:          arg.Sku,
		Name:         arg.Name,
		Gsm:          arg.Gsm,
		PaperType:    arg.PaperType,
		Finish:       arg.Finish,
		ParentWidth:  arg.ParentWidth,
		ParentHeight: arg.ParentHeight,
		CostPerSheet: arg.CostPerSheet,
		Usage:        arg.Usage,
		ProductID:    arg.ProductID,
		VariantID:    arg.VariantID,
	}
	f.rows[arg.Sku] = row
	return row, nil
}

func (f *fakeQueries) DeletePaperStockByVariant(_ context.Context, variantID pgtype.Text) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for sku, row := range f.rows {
		if row.VariantID == variantID {
			delete(f.rows, sku)
			out = append(out, sku)
		}
	}
	return out, nil
}

func (f *fakeQueries) DeletePaperStocksByProduct(_ context.Context, productID pgtype.Text) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for sku, row := range f.rows {
		if row.ProductID == productID {
			delete(f.rows, sku)
			out = append(out, sku)
		}
	}
	return out, nil
}

type fakeCache struct {
	mu          sync.Mutex
	invalidated []string
	err         error
}

func (c *fakeCache) Invalidate(_ context.Context, skus ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, skus...)
	return c.err
}

func newProcessor(t *testing.T, queries *fakeQueries, cache *fakeCache) *Processor {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	p, err := NewProcessor(ProcessorConfig{
		Queries: queries,
		Locker:  lock.New(client, lock.Options{TTL: time.Second, RetryBackoff: time.Millisecond}),
		Cache:   cache,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	return p
}

func coverVariant() Event {
	return Event{
		Type:         EventVariantUpserted,
		ProductID:    "prod_kelly",
		VariantID:    "variant_130",
		SKU:          "1107404",
		ProductTitle: "Kelly Digital Gloss",
		VariantTitle: "130# Cover 13x19",
		Paper: &PaperDetails{
			Usage:        "Covers",
			Type:         "Coated",
			Finish:       "Gloss",
			GSM:          350,
			ParentWidth:  13,
			ParentHeight: 19,
			CostPerM:     230,
		},
	}
}

func task(t *testing.T, ev Event) *asynq.Task {
	t.Helper()
	tk, err := NewTask(ev)
	require.NoError(t, err)
	return tk
}

func TestVariantUpsertedStoresPaper(t *testing.T) {
	queries := newFakeQueries()
	cache := &fakeCache{}
	p := newProcessor(t, queries, cache)

	require.NoError(t, p.HandleVariantUpserted(context.Background(), task(t, coverVariant())))

	row, ok := queries.rows["1107404"]
	require.True(t, ok)
	require.Equal(t, "Kelly Digital Gloss - 130# Cover 13x19", row.Name)
	require.InDelta(t, 0.23, row.CostPerSheet, 1e-12)
	require.Equal(t, "Covers", row.Usage)
	require.Equal(t, "variant_130", row.VariantID.String)
	require.Equal(t, []string{"1107404"}, cache.invalidated)
}

func TestVariantUpsertedMovesSKU(t *testing.T) {
	queries := newFakeQueries()
	cache := &fakeCache{}
	p := newProcessor(t, queries, cache)
	ctx := context.Background()

	require.NoError(t, p.HandleVariantUpserted(ctx, task(t, coverVariant())))

	moved := coverVariant()
	moved.SKU = "1107405"
	require.NoError(t, p.HandleVariantUpserted(ctx, task(t, moved)))

	require.NotContains(t, queries.rows, "1107404")
	require.Contains(t, queries.rows, "1107405")
	require.ElementsMatch(t, []string{"1107404", "1107404", "1107405"}, cache.invalidated)
}

func TestVariantUpsertedSkipsIncompleteVariants(t *testing.T) {
	p := newProcessor(t, newFakeQueries(), &fakeCache{})

	noPaper := coverVariant()
	noPaper.Paper = nil
	err := p.HandleVariantUpserted(context.Background(), task(t, noPaper))
	require.ErrorIs(t, err, asynq.SkipRetry)

	badUsage := coverVariant()
	badUsage.Paper.Usage = "Envelopes"
	err = p.HandleVariantUpserted(context.Background(), task(t, badUsage))
	require.ErrorIs(t, err, asynq.SkipRetry)

	err = p.HandleVariantUpserted(context.Background(), asynq.NewTask(TypeVariantUpserted, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestVariantUpsertedRetriesStoreFailures(t *testing.T) {
	queries := newFakeQueries()
	queries.failErr = errors.New("connection reset")
	cache := &fakeCache{}
	p := newProcessor(t, queries, cache)

	err := p.HandleVariantUpserted(context.Background(), task(t, coverVariant()))
	require.Error(t, err)
	require.NotErrorIs(t, err, asynq.SkipRetry)
	require.Empty(t, cache.invalidated)
}

func TestInvalidationFailureDoesNotFailTask(t *testing.T) {
	p := newProcessor(t, newFakeQueries(), &fakeCache{err: errors.New("redis down")})
	require.NoError(t, p.HandleVariantUpserted(context.Background(), task(t, coverVariant())))
}

func TestDeletes(t *testing.T) {
	queries := newFakeQueries()
	cache := &fakeCache{}
	p := newProcessor(t, queries, cache)
	ctx := context.Background()

	second := coverVariant()
	second.VariantID = "variant_100"
	second.SKU = "1106245"
	require.NoError(t, p.HandleVariantUpserted(ctx, task(t, coverVariant())))
	require.NoError(t, p.HandleVariantUpserted(ctx, task(t, second)))

	require.NoError(t, p.HandleVariantDeleted(ctx, task(t, Event{Type: EventVariantDeleted, ProductID: "prod_kelly", VariantID: "variant_130"})))
	require.NotContains(t, queries.rows, "1107404")
	require.Contains(t, queries.rows, "1106245")

	require.NoError(t, p.HandleProductDeleted(ctx, task(t, Event{Type: EventProductDeleted, ProductID: "prod_kelly"})))
	require.Empty(t, queries.rows)

	err := p.HandleVariantDeleted(ctx, task(t, Event{Type: EventVariantDeleted, ProductID: "prod_kelly"}))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestRegisterRoutesTaskTypes(t *testing.T) {
	queries := newFakeQueries()
	p := newProcessor(t, queries, &fakeCache{})
	mux := asynq.NewServeMux()
	p.Register(mux)

	payload, err := json.Marshal(coverVariant())
	require.NoError(t, err)
	require.NoError(t, mux.ProcessTask(context.Background(), asynq.NewTask(TypeVariantUpserted, payload)))
	require.Contains(t, queries.rows, "1107404")
}
