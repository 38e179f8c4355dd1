package catalog

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-cetak/internal/common"
	"github.com/noah-isme/backend-cetak/internal/pricing"
)

type paperReader interface {
	ListPapers(ctx context.Context, usage pricing.PaperUsage) ([]pricing.PaperStock, error)
	GetPaper(ctx context.Context, sku string) (pricing.PaperStock, error)
}

// Handler serves the read-only paper catalog behind the paper selectors.
type Handler struct {
	papers paperReader
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service paperReader
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{papers: cfg.Service}
}

// Register mounts the catalog routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/papers", h.Papers)
	r.Get("/papers/{sku}", h.Paper)
}

type paperListMeta struct {
	Count int                `json:"count"`
	Usage pricing.PaperUsage `json:"usage,omitempty"`
}

// Papers lists stocks, optionally filtered by ?usage=.
func (h *Handler) Papers(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	usage, err := ParseUsage(r.URL.Query().Get("usage"))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	papers, err := h.papers.ListPapers(r.Context(), usage)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": papers,
		"meta": paperListMeta{Count: len(papers), Usage: usage},
	})
}

// Paper returns one stock by SKU.
func (h *Handler) Paper(w http.ResponseWriter, r *http.Request) {
	if !h.ready(w) {
		return
	}
	sku := strings.TrimSpace(chi.URLParam(r, "sku"))
	if sku == "" {
		common.WriteError(w, common.InvalidArgument("sku is required", nil))
		return
	}
	paper, err := h.papers.GetPaper(r.Context(), sku)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": paper})
}

func (h *Handler) ready(w http.ResponseWriter) bool {
	if h.papers == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "catalog service not configured", nil)
		return false
	}
	return true
}
