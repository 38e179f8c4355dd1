package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-cetak/internal/common"
	dbgen "github.com/noah-isme/backend-cetak/internal/db/gen"
	"github.com/noah-isme/backend-cetak/internal/events"
	"github.com/noah-isme/backend-cetak/internal/obs"
)

type queryProvider interface {
	InsertQuote(ctx context.Context, arg dbgen.InsertQuoteParams) (dbgen.Quote, error)
	GetQuote(ctx context.Context, id pgtype.UUID) (dbgen.Quote, error)
	UpdateQuoteStatus(ctx context.Context, arg dbgen.UpdateQuoteStatusParams) (dbgen.Quote, error)
}

type eventBus interface {
	Emit(ctx context.Context, topic string, aggregateID pgtype.UUID, payload any) (dbgen.DomainEvent, error)
	History(ctx context.Context, aggregateID pgtype.UUID) ([]dbgen.DomainEvent, error)
}

// Quote is a persisted, priced job.
type Quote struct {
	ID                  string          `json:"id"`
	Mode                Mode            `json:"mode"`
	ProductID           string          `json:"productId,omitempty"`
	Specs               json.RawMessage `json:"specs"`
	TotalPrice          Money           `json:"totalPrice"`
	SpineWidthInches    float64         `json:"spineWidthInches"`
	ProductionTimeHours float64         `json:"productionTimeHours"`
	CalculationDetails  json.RawMessage `json:"calculationDetails,omitempty"`
	EstimatedDelivery   time.Time       `json:"estimatedDeliveryDate"`
	RulesVersion        int             `json:"rulesVersion"`
	Status              Status          `json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// Event is one entry of a quote's history.
type Event struct {
	Topic      string          `json:"topic"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// Service prices requests and manages persisted quotes.
type Service struct {
	pricers map[Mode]Pricer
	queries queryProvider
	events  eventBus
	logger  zerolog.Logger
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Pricers []Pricer
	Queries queryProvider
	Events  eventBus
	Logger  zerolog.Logger
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if len(cfg.Pricers) == 0 {
		return nil, errors.New("quote: at least one pricer is required")
	}
	pricers := make(map[Mode]Pricer, len(cfg.Pricers))
	for _, p := range cfg.Pricers {
		if p == nil {
			continue
		}
		pricers[p.Mode()] = p
	}
	return &Service{
		pricers: pricers,
		queries: cfg.Queries,
		events:  cfg.Events,
		logger:  cfg.Logger,
	}, nil
}

// Price runs the pricer registered for mode without persisting anything.
func (s *Service) Price(ctx context.Context, mode Mode, req Request) (Result, error) {
	pricer, ok := s.pricers[mode]
	if !ok {
		return Result{}, common.InvalidArgument(fmt.Sprintf("unsupported pricing mode %q", mode), nil)
	}
	res, err := pricer.Price(ctx, req)
	if err != nil {
		obs.ObserveQuote(string(mode), outcome(err), 0)
		return Result{}, err
	}
	total, _ := res.TotalPrice.Float64()
	obs.ObserveQuote(string(mode), "ok", total)
	return res, nil
}

func outcome(err error) string {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return strings.ToLower(appErr.Code)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "cancelled"
	}
	return "error"
}

// Create prices the request and stores it as a quote awaiting files.
func (s *Service) Create(ctx context.Context, in CreateQuoteRequest) (Quote, error) {
	if s.queries == nil {
		return Quote{}, errors.New("quote: queries provider is required")
	}
	mode, req, specs, err := in.resolve()
	if err != nil {
		return Quote{}, err
	}
	res, err := s.Price(ctx, mode, req)
	if err != nil {
		return Quote{}, err
	}

	params := dbgen.InsertQuoteParams{
		Mode:              string(mode),
		ProductID:         pgtype.Text{String: res.ProductID, Valid: res.ProductID != ""},
		Specs:             specs,
		TotalPrice:        toNumeric(res.TotalPrice.Decimal),
		SpineWidthInches:  res.SpineWidthInches,
		ProductionHours:   res.ProductionTimeHours,
		EstimatedDelivery: pgtype.Timestamptz{Time: res.EstimatedDelivery, Valid: true},
		RulesVersion:      int32(res.RulesVersion),
		Status:            string(StatusPendingFiles),
	}
	if res.Details != nil {
		details, err := json.Marshal(res.Details)
		if err != nil {
			return Quote{}, fmt.Errorf("encode calculation details: %w", err)
		}
		params.CalculationDetails = details
	}
	row, err := s.queries.InsertQuote(ctx, params)
	if err != nil {
		return Quote{}, fmt.Errorf("insert quote: %w", err)
	}
	quote := fromRow(row)
	s.emit(ctx, events.TopicQuoteCreated, row.ID, events.QuoteCreated{
		QuoteID:      quote.ID,
		Mode:         string(quote.Mode),
		TotalPrice:   quote.TotalPrice.StringFixed(2),
		RulesVersion: quote.RulesVersion,
		SpineWidth:   quote.SpineWidthInches,
	})
	return quote, nil
}

// Get returns a stored quote.
func (s *Service) Get(ctx context.Context, id string) (Quote, error) {
	pgID, err := parseID(id)
	if err != nil {
		return Quote{}, err
	}
	row, err := s.queries.GetQuote(ctx, pgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quote{}, common.NotFound("quote not found", err)
		}
		return Quote{}, fmt.Errorf("get quote: %w", err)
	}
	return fromRow(row), nil
}

// UpdateStatus moves a quote to next if the lifecycle allows it. A concurrent
// change between read and write is reported as INVALID_STATE.
func (s *Service) UpdateStatus(ctx context.Context, id string, next Status) (Quote, error) {
	if !next.Valid() {
		return Quote{}, common.InvalidArgument(fmt.Sprintf("unknown status %q", next), nil)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	if !current.Status.CanTransition(next) {
		obs.ObserveStatusTransition(string(next), "rejected")
		return Quote{}, common.InvalidState(fmt.Sprintf("cannot move quote from %s to %s", current.Status, next), nil).
			WithDetails(map[string]any{"from": current.Status, "to": next})
	}
	pgID, _ := parseID(id)
	row, err := s.queries.UpdateQuoteStatus(ctx, dbgen.UpdateQuoteStatusParams{
		NextStatus:    string(next),
		ID:            pgID,
		CurrentStatus: string(current.Status),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			obs.ObserveStatusTransition(string(next), "conflict")
			return Quote{}, common.InvalidState("quote status changed concurrently", err)
		}
		return Quote{}, fmt.Errorf("update quote status: %w", err)
	}
	obs.ObserveStatusTransition(string(next), "ok")
	updated := fromRow(row)
	s.emit(ctx, events.TopicQuoteStatusChanged, row.ID, events.QuoteStatusChanged{
		QuoteID: updated.ID,
		From:    string(current.Status),
		To:      string(updated.Status),
	})
	return updated, nil
}

// History lists the domain events recorded for a quote.
func (s *Service) History(ctx context.Context, id string) ([]Event, error) {
	pgID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if s.events == nil {
		return []Event{}, nil
	}
	rows, err := s.events.History(ctx, pgID)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, Event{Topic: row.Topic, Payload: row.Payload, OccurredAt: row.OccurredAt.Time})
	}
	return out, nil
}

// emit records a domain event. The quote row is already committed, so a
// failure here is logged rather than returned.
func (s *Service) emit(ctx context.Context, topic string, id pgtype.UUID, payload any) {
	if s.events == nil {
		return
	}
	if _, err := s.events.Emit(ctx, topic, id, payload); err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Msg("quote event not recorded")
	}
}

func (in CreateQuoteRequest) resolve() (Mode, Request, []byte, error) {
	mode := in.Mode
	if mode == "" {
		mode = ModeBook
	}
	switch mode {
	case ModeBook:
		if in.Book == nil {
			return "", Request{}, nil, common.InvalidArgument("book specification is required", nil)
		}
		specs, err := json.Marshal(in.Book)
		if err != nil {
			return "", Request{}, nil, fmt.Errorf("encode specs: %w", err)
		}
		return mode, Request{Job: in.Book.Job(), Overrides: in.Book.Overrides()}, specs, nil
	case ModeProduct:
		if in.Product == nil {
			return "", Request{}, nil, common.InvalidArgument("product specification is required", nil)
		}
		specs, err := json.Marshal(in.Product)
		if err != nil {
			return "", Request{}, nil, fmt.Errorf("encode specs: %w", err)
		}
		return mode, Request{Options: *in.Product}, specs, nil
	}
	return "", Request{}, nil, common.InvalidArgument(fmt.Sprintf("unsupported pricing mode %q", mode), nil)
}

func parseID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return pgtype.UUID{}, common.InvalidArgument("quote id must be a UUID", err)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func fromNumeric(n pgtype.Numeric) Money {
	if !n.Valid || n.Int == nil {
		return Money{decimal.Zero}
	}
	return Money{decimal.NewFromBigInt(n.Int, n.Exp)}
}

func fromRow(row dbgen.Quote) Quote {
	q := Quote{
		Mode:                Mode(row.Mode),
		ProductID:           row.ProductID.String,
		Specs:               row.Specs,
		TotalPrice:          fromNumeric(row.TotalPrice),
		SpineWidthInches:    row.SpineWidthInches,
		ProductionTimeHours: row.ProductionHours,
		CalculationDetails:  row.CalculationDetails,
		EstimatedDelivery:   row.EstimatedDelivery.Time,
		RulesVersion:        int(row.RulesVersion),
		Status:              Status(row.Status),
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}
	if row.ID.Valid {
		q.ID = uuid.UUID(row.ID.Bytes).String()
	}
	if len(q.CalculationDetails) == 0 {
		q.CalculationDetails = nil
	}
	return q
}
