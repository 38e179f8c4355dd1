package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// tierKey matches "min-max", "min-" and "min+" (the last two are unbounded)
// as well as a bare "min".
var tierKey = regexp.MustCompile(`^(\d+)(?:-(\d*)|\+)?$`)

// Tier is one quantity band of a tiered price table.
type Tier struct {
	Min   int
	Max   int // ignored when Open
	Open  bool
	Price float64
}

func (t Tier) contains(qty int) bool {
	return qty >= t.Min && (t.Open || qty <= t.Max)
}

// ParseTierKey parses a tier range key.
func ParseTierKey(key string) (min, max int, open bool, ok bool) {
	m := tierKey.FindStringSubmatch(key)
	if m == nil {
		return 0, 0, false, false
	}
	min, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false, false
	}
	if m[2] == "" {
		return min, 0, true, true
	}
	max, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false, false
	}
	return min, max, false, true
}

// PriceEntry is one selectable price in a pricing document.
type PriceEntry interface {
	// UnitPrice resolves the per-unit price for a quantity. modifier is the
	// value of the product's modifier option, or "" when it has none.
	UnitPrice(qty int, modifier string) float64
}

// FlatPrice is a fixed unit price.
type FlatPrice float64

func (f FlatPrice) UnitPrice(int, string) float64 { return float64(f) }

// TieredPrice is a quantity-banded price table, sorted by Min.
type TieredPrice []Tier

// UnitPrice returns the price of the band containing qty. When qty falls in
// a gap between bands the highest band starting at or below qty is used; a
// quantity below every band prices at zero.
func (t TieredPrice) UnitPrice(qty int, _ string) float64 {
	var fallback float64
	for _, tier := range t {
		if tier.Min > qty {
			break
		}
		if tier.contains(qty) {
			return tier.Price
		}
		fallback = tier.Price
	}
	return fallback
}

// ModifierRekeyedPrice is a table keyed by a modifier option's value. When
// the modifier's value has no entry the table's own tier keys apply.
type ModifierRekeyedPrice struct {
	Variants map[string]PriceEntry
	Base     TieredPrice
}

func (m ModifierRekeyedPrice) UnitPrice(qty int, modifier string) float64 {
	if v, ok := m.Variants[modifier]; ok && modifier != "" {
		return v.UnitPrice(qty, "")
	}
	return m.Base.UnitPrice(qty, "")
}

// DecodePriceEntry turns a raw pricing document value into a PriceEntry. A
// number is flat, an object of range keys is tiered, and an object with other
// keys is a modifier table whose values are themselves flat or tiered.
func DecodePriceEntry(raw json.RawMessage) (PriceEntry, error) {
	return decodePriceEntry(raw, true)
}

func decodePriceEntry(raw json.RawMessage, allowModifier bool) (PriceEntry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("price entry is empty")
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return FlatPrice(num), nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("price entry must be a number or an object")
	}

	var tiers TieredPrice
	variants := map[string]PriceEntry{}
	for key, val := range obj {
		if min, max, open, ok := ParseTierKey(key); ok {
			var price float64
			if err := json.Unmarshal(val, &price); err != nil {
				return nil, fmt.Errorf("tier %q must have a numeric price", key)
			}
			tiers = append(tiers, Tier{Min: min, Max: max, Open: open, Price: price})
			continue
		}
		if !allowModifier {
			return nil, fmt.Errorf("unexpected key %q in tier table", key)
		}
		entry, err := decodePriceEntry(val, false)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", key, err)
		}
		variants[key] = entry
	}
	sort.Slice(tiers, func(i, j int) bool {
		if tiers[i].Min != tiers[j].Min {
			return tiers[i].Min < tiers[j].Min
		}
		return !tiers[i].Open && (tiers[j].Open || tiers[i].Max < tiers[j].Max)
	})

	if len(variants) == 0 {
		return tiers, nil
	}
	return ModifierRekeyedPrice{Variants: variants, Base: tiers}, nil
}
