package quote

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/backend-cetak/internal/common"
	"github.com/noah-isme/backend-cetak/internal/obs"
	"github.com/noah-isme/backend-cetak/internal/pricing"
)

// Mode names a pricing strategy.
type Mode string

const (
	ModeBook    Mode = "book"
	ModeProduct Mode = "product"
)

// Request carries the input for either pricing mode. Book pricers read Job
// and Overrides; option pricers read Options.
type Request struct {
	Job       pricing.JobSpecification
	Overrides pricing.Overrides
	Options   pricing.OptionSpecs
}

// Result is a priced quote ready to be returned or persisted. TotalPrice is
// rounded to cents.
type Result struct {
	Mode                Mode
	TotalPrice          Money
	SpineWidthInches    float64
	ProductionTimeHours float64
	Details             *pricing.CalculationDetails
	EstimatedDelivery   time.Time
	RulesVersion        int
	ProductID           string
}

// Pricer prices one kind of request.
type Pricer interface {
	Mode() Mode
	Price(ctx context.Context, req Request) (Result, error)
}

type paperResolver interface {
	Resolve(ctx context.Context, job pricing.JobSpecification) (pricing.Papers, error)
}

type rulesSource interface {
	Current(ctx context.Context) (pricing.BusinessRules, error)
}

type productSource interface {
	Load(ctx context.Context, id string) (pricing.Product, map[string]pricing.PricingDocument, error)
}

// BookPricer prices books from paper physics, the catalog and the rules record.
type BookPricer struct {
	Papers   paperResolver
	Rules    rulesSource
	Delivery pricing.DeliveryPolicy
	Now      pricing.Clock
}

// Mode implements Pricer.
func (p BookPricer) Mode() Mode { return ModeBook }

// Price implements Pricer.
func (p BookPricer) Price(ctx context.Context, req Request) (Result, error) {
	ctx, span := obs.StartSpan(ctx, "pricing.book",
		attribute.Int("job.quantity", req.Job.Quantity),
		attribute.Int("job.pages", req.Job.TotalPages()),
		attribute.String("job.binding", string(req.Job.BindingMethod)),
	)
	defer span.End()

	if err := pricing.ValidateInput(req.Job); err != nil {
		return Result{}, toAppError(err)
	}
	rules, err := p.Rules.Current(ctx)
	if err != nil {
		obs.Fail(span, err, "")
		return Result{}, err
	}
	papers, err := p.Papers.Resolve(ctx, req.Job)
	if err != nil {
		obs.Fail(span, err, "")
		return Result{}, err
	}
	calc, err := pricing.Calculate(req.Job, papers, rules, req.Overrides)
	if err != nil {
		obs.Fail(span, err, pricing.Message(err))
		return Result{}, toAppError(err)
	}
	span.SetAttributes(
		attribute.Float64("quote.total_price", calc.TotalPrice),
		attribute.Int("rules.version", rules.Version),
	)

	details := calc.Details
	return Result{
		Mode:                ModeBook,
		TotalPrice:          NewMoney(calc.TotalPrice),
		SpineWidthInches:    calc.SpineWidthInches,
		ProductionTimeHours: calc.ProductionTimeHours,
		Details:             &details,
		EstimatedDelivery:   p.delivery().Estimate(p.now(), calc.ProductionTimeHours),
		RulesVersion:        rules.Version,
	}, nil
}

func (p BookPricer) delivery() pricing.DeliveryPolicy {
	if p.Delivery.HoursPerDay <= 0 {
		return pricing.DefaultDeliveryPolicy()
	}
	return p.Delivery
}

func (p BookPricer) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// OptionPricer prices simple products option by option from tier tables.
type OptionPricer struct {
	Products     productSource
	ShippingDays int
	Now          pricing.Clock
}

// Mode implements Pricer.
func (p OptionPricer) Mode() Mode { return ModeProduct }

// Price implements Pricer.
func (p OptionPricer) Price(ctx context.Context, req Request) (Result, error) {
	ctx, span := obs.StartSpan(ctx, "pricing.product",
		attribute.String("product.id", req.Options.ProductID),
		attribute.Int("job.quantity", req.Options.Quantity),
	)
	defer span.End()

	if req.Options.ProductID == "" {
		return Result{}, common.InvalidArgument("productId is required", nil)
	}
	if req.Options.Quantity <= 0 {
		return Result{}, common.InvalidArgument("quantity must be a positive number", nil)
	}
	product, docs, err := p.Products.Load(ctx, req.Options.ProductID)
	if err != nil {
		obs.Fail(span, err, "")
		return Result{}, err
	}
	total, err := pricing.PriceOptions(product, docs, req.Options)
	if err != nil {
		obs.Fail(span, err, pricing.Message(err))
		return Result{}, toAppError(err)
	}
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	return Result{
		Mode:              ModeProduct,
		TotalPrice:        NewMoney(total),
		EstimatedDelivery: pricing.CalendarDelivery(now, product, p.ShippingDays),
		ProductID:         product.ID,
	}, nil
}

// toAppError maps engine sentinels onto the API error taxonomy.
func toAppError(err error) error {
	if err == nil || common.IsAppError(err) {
		return err
	}
	msg := pricing.Message(err)
	switch {
	case errors.Is(err, pricing.ErrInvalidArgument):
		return common.InvalidArgument(msg, err)
	case errors.Is(err, pricing.ErrNotFound):
		return common.NotFound(msg, err)
	case errors.Is(err, pricing.ErrInternal):
		return common.Internal(msg, err)
	}
	return err
}
