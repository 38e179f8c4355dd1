package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/noah-isme/backend-cetak/internal/common"
	dbgen "github.com/noah-isme/backend-cetak/internal/db/gen"
	"github.com/noah-isme/backend-cetak/internal/pricing"
)

type queryProvider interface {
	GetProduct(ctx context.Context, id string) (dbgen.Product, error)
	ListPricingDocuments(ctx context.Context, ids []string) ([]dbgen.PricingMatrix, error)
}

// Service reads option-priced products and their pricing documents.
type Service struct {
	queries queryProvider
}

// NewService constructs a Service.
func NewService(queries queryProvider) (*Service, error) {
	if queries == nil {
		return nil, errors.New("product: queries provider is required")
	}
	return &Service{queries: queries}, nil
}

// Get returns the product document.
func (s *Service) Get(ctx context.Context, id string) (pricing.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pricing.Product{}, common.InvalidArgument("productId is required", nil)
	}
	row, err := s.queries.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pricing.Product{}, common.NotFound("product not found", err).WithDetails(map[string]any{"productId": id})
		}
		return pricing.Product{}, fmt.Errorf("get product: %w", err)
	}
	product := pricing.Product{
		ID:                 row.ID,
		Name:               row.Name,
		BaseProductionDays: int(row.BaseProductionDays),
	}
	if len(row.Options) > 0 {
		if err := json.Unmarshal(row.Options, &product.Options); err != nil {
			return pricing.Product{}, common.Internal("product options are malformed", err)
		}
	}
	return product, nil
}

// Documents fetches the pricing documents the product's options reference.
// Documents missing from the store are absent from the map.
func (s *Service) Documents(ctx context.Context, product pricing.Product) (map[string]pricing.PricingDocument, error) {
	ids := product.PricedDocuments()
	docs := make(map[string]pricing.PricingDocument, len(ids))
	if len(ids) == 0 {
		return docs, nil
	}
	rows, err := s.queries.ListPricingDocuments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list pricing documents: %w", err)
	}
	for _, row := range rows {
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(row.Data, &entries); err != nil {
			return nil, common.Internal("pricing document is malformed", err).WithDetails(map[string]any{"document": row.ID})
		}
		docs[row.ID] = pricing.PricingDocument{ID: row.ID, Entries: entries}
	}
	return docs, nil
}

// Load returns a product together with its pricing documents.
func (s *Service) Load(ctx context.Context, id string) (pricing.Product, map[string]pricing.PricingDocument, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return pricing.Product{}, nil, err
	}
	docs, err := s.Documents(ctx, product)
	if err != nil {
		return pricing.Product{}, nil, err
	}
	return product, docs, nil
}
