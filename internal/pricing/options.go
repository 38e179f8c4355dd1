package pricing

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// PricingLogic says how an option's unit price accumulates into the total.
type PricingLogic string

const (
	LogicPerItem  PricingLogic = "per-item"
	LogicPerPage  PricingLogic = "per-page"
	LogicModifier PricingLogic = "modifier"
)

// OptionChoice is one selectable value of a product option.
type OptionChoice struct {
	Name string `json:"name"`
}

// ProductOption is a configurable option declared by a product.
type ProductOption struct {
	PricingDoc   string                  `json:"pricingDoc,omitempty"`
	PricingLogic PricingLogic            `json:"pricingLogic,omitempty"`
	Choices      map[string]OptionChoice `json:"choices,omitempty"`
}

// Product is a simple product priced option by option.
type Product struct {
	ID                 string                   `json:"id"`
	Name               string                   `json:"name"`
	BaseProductionDays int                      `json:"baseProductionDays"`
	Options            map[string]ProductOption `json:"options"`
}

// OptionKeys returns the declared option names in stable order.
func (p Product) OptionKeys() []string {
	keys := make([]string, 0, len(p.Options))
	for k := range p.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ModifierKey returns the first option declared with modifier logic.
func (p Product) ModifierKey() (string, bool) {
	for _, k := range p.OptionKeys() {
		if p.Options[k].PricingLogic == LogicModifier {
			return k, true
		}
	}
	return "", false
}

// PricedDocuments lists the pricing documents needed to price the product.
// Modifier options only re-key other tables, so their documents are skipped.
func (p Product) PricedDocuments() []string {
	seen := map[string]struct{}{}
	var ids []string
	for _, k := range p.OptionKeys() {
		opt := p.Options[k]
		if opt.PricingDoc == "" || opt.PricingLogic == LogicModifier {
			continue
		}
		if _, ok := seen[opt.PricingDoc]; ok {
			continue
		}
		seen[opt.PricingDoc] = struct{}{}
		ids = append(ids, opt.PricingDoc)
	}
	return ids
}

// PricingDocument maps selection values to price entries.
type PricingDocument struct {
	ID      string
	Entries map[string]json.RawMessage
}

// OptionSpecs is a flat specification for option-priced products: the
// reserved productId, quantity and pageCount keys plus one value per option.
type OptionSpecs struct {
	ProductID string
	Quantity  int
	Values    map[string]any
}

// UnmarshalJSON splits the reserved keys from option selections.
func (s *OptionSpecs) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Values = map[string]any{}
	for k, v := range raw {
		switch k {
		case "productId":
			id, ok := v.(string)
			if !ok && v != nil {
				return fmt.Errorf("productId must be a string")
			}
			s.ProductID = id
		case "quantity":
			if v == nil {
				continue
			}
			n, ok := v.(float64)
			if !ok || n != float64(int(n)) {
				return fmt.Errorf("quantity must be an integer")
			}
			s.Quantity = int(n)
		default:
			s.Values[k] = v
		}
	}
	return nil
}

// MarshalJSON flattens the specs back into a single object.
func (s OptionSpecs) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Values)+2)
	for k, v := range s.Values {
		out[k] = v
	}
	out["productId"] = s.ProductID
	out["quantity"] = s.Quantity
	return json.Marshal(out)
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case bool:
		return t
	}
	return true
}

func (s OptionSpecs) pageCount() (float64, bool) {
	switch v := s.Values["pageCount"].(type) {
	case float64:
		return v, v > 0
	case int:
		return float64(v), v > 0
	}
	return 0, false
}

// lineStrategy turns an option's unit price into its line total.
type lineStrategy func(unit float64, specs OptionSpecs) (float64, error)

var lineStrategies = map[PricingLogic]lineStrategy{
	LogicPerItem: func(unit float64, specs OptionSpecs) (float64, error) {
		return unit * float64(specs.Quantity), nil
	},
	LogicPerPage: func(unit float64, specs OptionSpecs) (float64, error) {
		pages, ok := specs.pageCount()
		if !ok {
			return 0, invalidf("a valid pageCount is required for per-page pricing")
		}
		return unit * pages * float64(specs.Quantity), nil
	},
	LogicModifier: func(float64, OptionSpecs) (float64, error) {
		return 0, nil
	},
}

// PriceOptions totals an option-priced product. docs must hold every document
// named by Product.PricedDocuments; a missing one is reported as not found.
func PriceOptions(product Product, docs map[string]PricingDocument, specs OptionSpecs) (float64, error) {
	if specs.Quantity <= 0 {
		return 0, invalidf("quantity must be a positive number")
	}
	keys := product.OptionKeys()
	for _, k := range keys {
		if !present(specs.Values[k]) {
			return 0, invalidf("missing required spec for %q: %s", product.ID, k)
		}
	}

	var modifier string
	if mk, ok := product.ModifierKey(); ok {
		modifier, _ = specs.Values[mk].(string)
	}

	var total float64
	for _, k := range keys {
		opt := product.Options[k]
		if opt.PricingDoc == "" || opt.PricingLogic == LogicModifier {
			continue
		}
		doc, ok := docs[opt.PricingDoc]
		if !ok {
			return 0, notFoundf("pricing document %s not found", opt.PricingDoc)
		}
		value, ok := specs.Values[k].(string)
		if !ok {
			return 0, invalidf("spec value for %s must be a string", k)
		}
		strategy, ok := lineStrategies[opt.PricingLogic]
		if !ok {
			return 0, internalf("option %s has unknown pricing logic %q", k, opt.PricingLogic)
		}

		var unit float64
		if raw, ok := doc.Entries[value]; ok {
			entry, err := DecodePriceEntry(raw)
			if err != nil {
				return 0, internalf("pricing document %s entry %s: %v", doc.ID, value, err)
			}
			unit = entry.UnitPrice(specs.Quantity, modifier)
		}
		line, err := strategy(unit, specs)
		if err != nil {
			return 0, err
		}
		total += line
	}
	return total, nil
}

// CalendarDelivery is the option-priced delivery promise: base production
// days plus shipping days, counted on the calendar.
func CalendarDelivery(now time.Time, product Product, shippingDays int) time.Time {
	return now.AddDate(0, 0, product.BaseProductionDays+shippingDays)
}
