package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
	"github.com/vendhub/vendhub-backend/pkg/pagination"
)

// Service serves the recent-sales panel on the location detail page.
type Service interface {
	ListByLocation(ctx context.Context, input ListInput) (*ListResult, error)
}

// ListInput identifies the location and the requested page.
type ListInput struct {
	LocationID uuid.UUID
	Pagination pagination.Params
}

// ListResult is one page of sales plus the cursor for the next one.
type ListResult struct {
	Sales      []SaleView `json:"sales"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// SaleView is one sale row joined with its product for display.
type SaleView struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SaleDate    time.Time       `json:"sale_date"`
	DataSource  string          `json:"data_source"`
	CreatedAt   time.Time       `json:"created_at"`
}

type service struct {
	repo Repository
}

// NewService wires the sales read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListByLocation(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.LocationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location id required")
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	location, err := s.repo.FindLocationByID(ctx, input.LocationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}
	if location == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
	}

	rows, next, err := s.repo.ListByLocation(ctx, listSalesParams{
		LocationID: input.LocationID,
		Limit:      input.Pagination.Limit,
		Cursor:     cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}

	views := make([]SaleView, 0, len(rows))
	for _, row := range rows {
		views = append(views, SaleView{
			ID:          row.ID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			TotalAmount: row.TotalAmount,
			SaleDate:    row.SaleDate,
			DataSource:  row.DataSource,
			CreatedAt:   row.CreatedAt,
		})
	}

	result := &ListResult{Sales: views}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}
