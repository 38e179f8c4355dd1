package quote

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-cetak/internal/common"
	"github.com/noah-isme/backend-cetak/internal/pricing"
)

// Handler exposes pricing and quote endpoints.
type Handler struct {
	service   *Service
	validator *Validator
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service   *Service
	Validator *Validator
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	v := cfg.Validator
	if v == nil {
		v = NewValidator(nil)
	}
	return &Handler{service: cfg.Service, validator: v}
}

type bookPriceResponse struct {
	TotalPrice          Money                       `json:"totalPrice"`
	SpineWidthInches    float64                     `json:"spineWidthInches"`
	ProductionTimeHours float64                     `json:"productionTimeHours"`
	CalculationDetails  *pricing.CalculationDetails `json:"calculationDetails"`
	EstimatedDelivery   time.Time                   `json:"estimatedDeliveryDate"`
	RulesVersion        int                         `json:"rulesVersion"`
}

type productPriceResponse struct {
	TotalPrice        Money     `json:"totalPrice"`
	EstimatedDelivery time.Time `json:"estimatedDeliveryDate"`
}

// PriceBook handles POST /api/v1/pricing/book.
func (h *Handler) PriceBook(w http.ResponseWriter, r *http.Request) {
	var body BookQuoteRequest
	if err := common.DecodeJSON(r, &body); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.validator.Struct(body); err != nil {
		common.WriteError(w, err)
		return
	}
	res, err := h.service.Price(r.Context(), ModeBook, Request{Job: body.Job(), Overrides: body.Overrides()})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": bookPriceResponse{
		TotalPrice:          res.TotalPrice,
		SpineWidthInches:    res.SpineWidthInches,
		ProductionTimeHours: res.ProductionTimeHours,
		CalculationDetails:  res.Details,
		EstimatedDelivery:   res.EstimatedDelivery,
		RulesVersion:        res.RulesVersion,
	}})
}

// PriceProduct handles POST /api/v1/pricing/products.
func (h *Handler) PriceProduct(w http.ResponseWriter, r *http.Request) {
	var specs pricing.OptionSpecs
	if err := common.DecodeJSON(r, &specs); err != nil {
		common.WriteError(w, err)
		return
	}
	res, err := h.service.Price(r.Context(), ModeProduct, Request{Options: specs})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": productPriceResponse{
		TotalPrice:        res.TotalPrice,
		EstimatedDelivery: res.EstimatedDelivery,
	}})
}

// Create handles POST /api/v1/quotes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body CreateQuoteRequest
	if err := common.DecodeJSON(r, &body); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.validator.Struct(body); err != nil {
		common.WriteError(w, err)
		return
	}
	quote, err := h.service.Create(r.Context(), body)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	w.Header().Set("Location", "/api/v1/quotes/"+quote.ID)
	common.JSON(w, http.StatusCreated, map[string]any{"data": quote})
}

// Get handles GET /api/v1/quotes/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// UpdateStatus handles PATCH /api/v1/quotes/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body StatusRequest
	if err := common.DecodeJSON(r, &body); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.validator.Struct(body); err != nil {
		common.WriteError(w, err)
		return
	}
	quote, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// Events handles GET /api/v1/quotes/{id}/events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": history})
}
