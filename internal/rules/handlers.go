package rules

import (
	"net/http"

	"github.com/noah-isme/backend-cetak/internal/common"
	"github.com/noah-isme/backend-cetak/internal/pricing"
)

// Handler exposes the rules record to back-office tooling.
type Handler struct {
	service *Service
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{service: cfg.Service}
}

type rulesResponse struct {
	Version int                   `json:"version"`
	Rules   pricing.BusinessRules `json:"rules"`
}

// Get handles GET /api/v1/admin/rules.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.Current(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rulesResponse{Version: rules.Version, Rules: rules}})
}

// Put handles PUT /api/v1/admin/rules.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	var body pricing.BusinessRules
	if err := common.DecodeJSON(r, &body); err != nil {
		common.WriteError(w, err)
		return
	}
	stored, err := h.service.Replace(r.Context(), body)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rulesResponse{Version: stored.Version, Rules: stored}})
}
