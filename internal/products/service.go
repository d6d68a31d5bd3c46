package products

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/pkg/enums"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
	"github.com/vendhub/vendhub-backend/pkg/pagination"
)

// Service serves the product catalog views.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
}

// ListInput carries the catalog filter knobs. Category and Query are
// optional; an empty Query matches everything.
type ListInput struct {
	Category   *enums.ProductCategory
	Query      string
	Pagination pagination.Params
}

// ListResult is one catalog page plus the cursor for the next one.
type ListResult struct {
	Products   []CatalogEntry `json:"products"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// CatalogEntry is one product row on the catalog page. LocationCount and
// TotalStock summarize how widely the product is currently stocked.
type CatalogEntry struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	UPC           *string   `json:"upc,omitempty"`
	Category      string    `json:"category"`
	LocationCount int       `json:"location_count"`
	TotalStock    int       `json:"total_stock"`
	CreatedAt     time.Time `json:"created_at"`
}

type service struct {
	repo Repository
}

// NewService wires the catalog read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown category %q", *input.Category))
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, next, err := s.repo.List(ctx, listProductsParams{
		Limit:    input.Pagination.Limit,
		Cursor:   cursor,
		Category: input.Category,
		Query:    input.Query,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	entries := make([]CatalogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, CatalogEntry{
			ID:            row.ID,
			Name:          row.Name,
			UPC:           row.UPC,
			Category:      row.Category,
			LocationCount: row.LocationCount,
			TotalStock:    row.TotalStock,
			CreatedAt:     row.CreatedAt,
		})
	}

	result := &ListResult{Products: entries}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}
