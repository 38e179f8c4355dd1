package catalogsync

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Commerce platform event kinds accepted by the webhook.
const (
	EventVariantUpserted = "variant.upserted"
	EventVariantDeleted  = "variant.deleted"
	EventProductDeleted  = "product.deleted"
)

// Task types consumed by the worker.
const (
	TypeVariantUpserted = "catalog:" + EventVariantUpserted
	TypeVariantDeleted  = "catalog:" + EventVariantDeleted
	TypeProductDeleted  = "catalog:" + EventProductDeleted
)

// PaperDetails are the physical attributes a commerce variant carries for a
// paper stock. CostPerM is the price of a thousand parent sheets.
type PaperDetails struct {
	Usage        string  `json:"usage" validate:"required"`
	Type         string  `json:"type" validate:"required,oneof=Coated Uncoated"`
	Finish       string  `json:"finish,omitempty"`
	GSM          float64 `json:"gsm" validate:"gt=0"`
	ParentWidth  float64 `json:"parentWidth" validate:"gt=0"`
	ParentHeight float64 `json:"parentHeight" validate:"gt=0"`
	CostPerM     float64 `json:"costPerM" validate:"gte=0"`
}

// Event is a catalog change published by the commerce platform.
type Event struct {
	Type         string        `json:"type" validate:"required,oneof=variant.upserted variant.deleted product.deleted"`
	ProductID    string        `json:"productId" validate:"required"`
	VariantID    string        `json:"variantId,omitempty" validate:"required_unless=Type product.deleted"`
	SKU          string        `json:"sku,omitempty" validate:"required_if=Type variant.upserted"`
	ProductTitle string        `json:"productTitle,omitempty"`
	VariantTitle string        `json:"variantTitle,omitempty"`
	Paper        *PaperDetails `json:"paper,omitempty" validate:"required_if=Type variant.upserted"`
}

// Name is the display name stored for the paper stock.
func (e Event) Name() string {
	switch {
	case e.ProductTitle != "" && e.VariantTitle != "":
		return e.ProductTitle + " - " + e.VariantTitle
	case e.ProductTitle != "":
		return e.ProductTitle
	case e.VariantTitle != "":
		return e.VariantTitle
	}
	return e.SKU
}

// NewTask wraps the event in an asynq task of the matching type.
func NewTask(e Event) (*asynq.Task, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode catalog event: %w", err)
	}
	return asynq.NewTask("catalog:"+e.Type, payload), nil
}

func decodeEvent(t *asynq.Task) (Event, error) {
	var e Event
	if err := json.Unmarshal(t.Payload(), &e); err != nil {
		return Event{}, fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return e, nil
}
