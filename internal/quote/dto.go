package quote

import (
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-cetak/internal/common"
	"github.com/noah-isme/backend-cetak/internal/pricing"
)

// BookQuoteRequest is the body of POST /api/v1/pricing/book. Numeric bounds
// match pricing.MaxQuantity, pricing.MinTrimInches and pricing.MaxBandPages.
type BookQuoteRequest struct {
	Quantity               int     `json:"quantity" validate:"gt=0,lte=1000000"`
	FinishedWidth          float64 `json:"finishedWidth" validate:"gte=0.5"`
	FinishedHeight         float64 `json:"finishedHeight" validate:"gte=0.5"`
	BWPages                int     `json:"bwPages" validate:"gte=0,lte=5000"`
	ColorPages             int     `json:"colorPages" validate:"gte=0,lte=5000"`
	BWPaperSKU             string  `json:"bwPaperSku,omitempty" validate:"max=64"`
	ColorPaperSKU          string  `json:"colorPaperSku,omitempty" validate:"max=64"`
	CoverPaperSKU          string  `json:"coverPaperSku,omitempty" validate:"max=64"`
	HasCover               bool    `json:"hasCover"`
	CoverPrintColor        string  `json:"coverPrintColor,omitempty" validate:"omitempty,oneof=color bw"`
	CoverPrintsOnBothSides bool    `json:"coverPrintsOnBothSides"`
	LaminationType         string  `json:"laminationType,omitempty" validate:"omitempty,oneof=none gloss matte"`
	BindingMethod          string  `json:"bindingMethod,omitempty" validate:"omitempty,oneof=none perfectBound saddleStitch"`

	LaborRate       *float64 `json:"laborRate,omitempty" validate:"omitempty,gte=0"`
	MarkupPercent   *float64 `json:"markupPercent,omitempty" validate:"omitempty,gte=0"`
	SpoilagePercent *float64 `json:"spoilagePercent,omitempty" validate:"omitempty,gte=0"`
}

// Job converts the request into an engine specification. Omitted enums
// default to "none" and a colour cover.
func (r BookQuoteRequest) Job() pricing.JobSpecification {
	job := pricing.JobSpecification{
		Quantity:               r.Quantity,
		FinishedWidth:          r.FinishedWidth,
		FinishedHeight:         r.FinishedHeight,
		BWPages:                r.BWPages,
		ColorPages:             r.ColorPages,
		BWPaperSKU:             strings.TrimSpace(r.BWPaperSKU),
		ColorPaperSKU:          strings.TrimSpace(r.ColorPaperSKU),
		CoverPaperSKU:          strings.TrimSpace(r.CoverPaperSKU),
		HasCover:               r.HasCover,
		CoverPrintColor:        pricing.PrintColor(r.CoverPrintColor),
		CoverPrintsOnBothSides: r.CoverPrintsOnBothSides,
		LaminationType:         pricing.LaminationType(r.LaminationType),
		BindingMethod:          pricing.BindingMethod(r.BindingMethod),
	}
	if job.CoverPrintColor == "" {
		job.CoverPrintColor = pricing.PrintColorColor
	}
	if job.LaminationType == "" {
		job.LaminationType = pricing.LaminationNone
	}
	if job.BindingMethod == "" {
		job.BindingMethod = pricing.BindingNone
	}
	return job
}

// Overrides returns the per-request rule overrides.
func (r BookQuoteRequest) Overrides() pricing.Overrides {
	return pricing.Overrides{
		LaborRate:       r.LaborRate,
		MarkupPercent:   r.MarkupPercent,
		SpoilagePercent: r.SpoilagePercent,
	}
}

// CreateQuoteRequest is the body of POST /api/v1/quotes. Mode selects which
// of Book or Product is priced and persisted.
type CreateQuoteRequest struct {
	Mode    Mode                 `json:"mode,omitempty" validate:"omitempty,oneof=book product"`
	Book    *BookQuoteRequest    `json:"book,omitempty"`
	Product *pricing.OptionSpecs `json:"product,omitempty"`
}

// StatusRequest is the body of PATCH /api/v1/quotes/{id}/status.
type StatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

// Validator wraps go-playground/validator and reports failures as AppErrors.
type Validator struct {
	v *validator.Validate
}

// NewValidator constructs a Validator. v should come from
// common.NewValidator so failures are keyed by JSON field name; a nil v gets
// a fresh instance.
func NewValidator(v *validator.Validate) *Validator {
	if v == nil {
		v = common.NewValidator()
	}
	return &Validator{v: v}
}

// Struct validates s and converts failures into INVALID_ARGUMENT.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.InvalidArgument("invalid request", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = ruleMessage(fe)
	}
	return common.InvalidArgument(fmt.Sprintf("invalid %s", verrs[0].Field()), err).
		WithDetails(map[string]any{"fields": fields})
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "is invalid"
}
