package pricing_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-cetak/internal/pricing"
)

func rawDoc(t *testing.T, id, body string) pricing.PricingDocument {
	t.Helper()
	var entries map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &entries))
	return pricing.PricingDocument{ID: id, Entries: entries}
}

func bookProduct() pricing.Product {
	return pricing.Product{
		ID:                 "book",
		Name:               "Books (Doujinshi, Manga)",
		BaseProductionDays: 5,
		Options: map[string]pricing.ProductOption{
			"binding":    {PricingLogic: pricing.LogicModifier},
			"interior":   {PricingDoc: "interior_bw", PricingLogic: pricing.LogicPerPage},
			"coverStock": {PricingDoc: "cover_color", PricingLogic: pricing.LogicPerItem},
		},
	}
}

func bookDocs(t *testing.T) map[string]pricing.PricingDocument {
	return map[string]pricing.PricingDocument{
		"interior_bw": rawDoc(t, "interior_bw", `{"paper_80lb_matte": 0.015, "paper_60lb_uncoated": 0.012}`),
		"cover_color": rawDoc(t, "cover_color", `{
			"stock_100lb_gloss": {"1-49": 0.30, "50-99": 0.25, "100-": 0.20},
			"stock_100lb_matte": {"perfect": {"1-": 0.40}, "saddle": 0.10, "1-": 0.27}
		}`),
	}
}

func bookSpecs(qty int, values map[string]any) pricing.OptionSpecs {
	v := map[string]any{
		"binding":    "perfect",
		"interior":   "paper_80lb_matte",
		"coverStock": "stock_100lb_gloss",
		"pageCount":  float64(40),
	}
	for k, val := range values {
		v[k] = val
	}
	return pricing.OptionSpecs{ProductID: "book", Quantity: qty, Values: v}
}

func TestPriceOptions(t *testing.T) {
	product := bookProduct()
	docs := bookDocs(t)

	t.Run("flat per page plus tiered per item", func(t *testing.T) {
		total, err := pricing.PriceOptions(product, docs, bookSpecs(60, nil))
		require.NoError(t, err)
		require.InDelta(t, 0.015*40*60+0.25*60, total, 1e-9)
	})

	t.Run("modifier re-keys the table", func(t *testing.T) {
		total, err := pricing.PriceOptions(product, docs, bookSpecs(10, map[string]any{"coverStock": "stock_100lb_matte"}))
		require.NoError(t, err)
		require.InDelta(t, 0.015*40*10+0.40*10, total, 1e-9)

		total, err = pricing.PriceOptions(product, docs, bookSpecs(10, map[string]any{"coverStock": "stock_100lb_matte", "binding": "saddle"}))
		require.NoError(t, err)
		require.InDelta(t, 0.015*40*10+0.10*10, total, 1e-9)
	})

	t.Run("unmatched modifier uses base tiers", func(t *testing.T) {
		total, err := pricing.PriceOptions(product, docs, bookSpecs(10, map[string]any{"coverStock": "stock_100lb_matte", "binding": "coil"}))
		require.NoError(t, err)
		require.InDelta(t, 0.015*40*10+0.27*10, total, 1e-9)
	})

	t.Run("missing option is invalid", func(t *testing.T) {
		specs := bookSpecs(10, nil)
		delete(specs.Values, "binding")
		_, err := pricing.PriceOptions(product, docs, specs)
		require.True(t, errors.Is(err, pricing.ErrInvalidArgument))
	})

	t.Run("non string selection is invalid", func(t *testing.T) {
		_, err := pricing.PriceOptions(product, docs, bookSpecs(10, map[string]any{"interior": float64(3)}))
		require.True(t, errors.Is(err, pricing.ErrInvalidArgument))
	})

	t.Run("per page needs a page count", func(t *testing.T) {
		_, err := pricing.PriceOptions(product, docs, bookSpecs(10, map[string]any{"pageCount": "forty"}))
		require.True(t, errors.Is(err, pricing.ErrInvalidArgument))
		require.Contains(t, err.Error(), "pageCount")
	})

	t.Run("missing pricing document is not found", func(t *testing.T) {
		_, err := pricing.PriceOptions(product, map[string]pricing.PricingDocument{"interior_bw": docs["interior_bw"]}, bookSpecs(10, nil))
		require.True(t, errors.Is(err, pricing.ErrNotFound))
	})

	t.Run("malformed entry is internal", func(t *testing.T) {
		broken := bookDocs(t)
		broken["cover_color"] = rawDoc(t, "cover_color", `{"stock_100lb_gloss": "cheap"}`)
		_, err := pricing.PriceOptions(product, broken, bookSpecs(10, nil))
		require.True(t, errors.Is(err, pricing.ErrInternal))
	})

	t.Run("unknown selection prices at zero", func(t *testing.T) {
		total, err := pricing.PriceOptions(product, docs, bookSpecs(10, map[string]any{"interior": "paper_vellum"}))
		require.NoError(t, err)
		require.InDelta(t, 0.30*10, total, 1e-9)
	})

	t.Run("product without options is free", func(t *testing.T) {
		sticker := pricing.Product{ID: "sticker", BaseProductionDays: 3}
		total, err := pricing.PriceOptions(sticker, nil, pricing.OptionSpecs{ProductID: "sticker", Quantity: 5})
		require.NoError(t, err)
		require.Zero(t, total)
	})
}

func TestTieredPriceResolution(t *testing.T) {
	entry, err := pricing.DecodePriceEntry(json.RawMessage(`{"100-": 0.5, "1-10": 2, "20-49": 1}`))
	require.NoError(t, err)
	tiers, ok := entry.(pricing.TieredPrice)
	require.True(t, ok)
	require.Equal(t, []int{1, 20, 100}, []int{tiers[0].Min, tiers[1].Min, tiers[2].Min})

	require.Equal(t, 2.0, entry.UnitPrice(1, ""))
	require.Equal(t, 2.0, entry.UnitPrice(10, ""))
	require.Equal(t, 1.0, entry.UnitPrice(49, ""))
	require.Equal(t, 0.5, entry.UnitPrice(5000, ""))

	// Quantities in a gap keep the highest band that starts at or below them.
	// The storefront's old price function scanned every band without
	// stopping, so it priced 15 at 0.5 and the lone "10-20" band below at 3;
	// those quotes now come out at 2 and 0.
	require.Equal(t, 2.0, entry.UnitPrice(15, ""))
	require.Equal(t, 1.0, entry.UnitPrice(75, ""))

	below, err := pricing.DecodePriceEntry(json.RawMessage(`{"10-20": 3}`))
	require.NoError(t, err)
	require.Zero(t, below.UnitPrice(5, ""))

	empty, err := pricing.DecodePriceEntry(json.RawMessage(`{}`))
	require.NoError(t, err)
	require.Zero(t, empty.UnitPrice(5, ""))
}

func TestDecodePriceEntry(t *testing.T) {
	flat, err := pricing.DecodePriceEntry(json.RawMessage(`0.018`))
	require.NoError(t, err)
	require.Equal(t, pricing.FlatPrice(0.018), flat)

	mod, err := pricing.DecodePriceEntry(json.RawMessage(`{"perfect": 1.5, "1-": 1}`))
	require.NoError(t, err)
	require.IsType(t, pricing.ModifierRekeyedPrice{}, mod)

	for _, bad := range []string{`"x"`, `null`, `[1,2]`, `{"a": {"b": 1}}`, `{"1-5": "x"}`} {
		_, err := pricing.DecodePriceEntry(json.RawMessage(bad))
		require.Error(t, err, bad)
	}

	min, max, open, ok := pricing.ParseTierKey("50+")
	require.True(t, ok)
	require.True(t, open)
	require.Equal(t, 50, min)
	require.Zero(t, max)
}

func TestOptionSpecsJSON(t *testing.T) {
	var specs pricing.OptionSpecs
	require.NoError(t, json.Unmarshal([]byte(`{"productId":"book","quantity":25,"binding":"perfect","pageCount":40}`), &specs))
	require.Equal(t, "book", specs.ProductID)
	require.Equal(t, 25, specs.Quantity)
	require.Equal(t, "perfect", specs.Values["binding"])
	require.Equal(t, float64(40), specs.Values["pageCount"])

	require.Error(t, json.Unmarshal([]byte(`{"productId":"book","quantity":2.5}`), &specs))
}

func TestPricedDocumentsSkipsModifiers(t *testing.T) {
	p := bookProduct()
	p.Options["binding"] = pricing.ProductOption{PricingDoc: "binding_rates", PricingLogic: pricing.LogicModifier}
	require.Equal(t, []string{"cover_color", "interior_bw"}, p.PricedDocuments())
}
