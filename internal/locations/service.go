package locations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/pkg/enums"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
)

// Service serves the dashboard's location views.
type Service interface {
	List(ctx context.Context) ([]LocationSummary, error)
	Get(ctx context.Context, id uuid.UUID) (*LocationDetail, error)
}

// LocationSummary is one dashboard row: the site plus its stock aggregates.
type LocationSummary struct {
	ID              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Address         *string   `json:"address,omitempty"`
	ProductCount    int       `json:"product_count"`
	TotalStock      int       `json:"total_stock"`
	LowStockCount   int       `json:"low_stock_count"`
	OutOfStockCount int       `json:"out_of_stock_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// LocationDetail is the location page: the site plus one row per tracked
// product with its derived stock status.
type LocationDetail struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Address   *string         `json:"address,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []InventoryItem `json:"items"`
}

// InventoryItem is one tracked product at a location. Status is computed
// from the stock numbers on read and never persisted.
type InventoryItem struct {
	InventoryID   uuid.UUID         `json:"inventory_id"`
	ProductID     uuid.UUID         `json:"product_id"`
	ProductName   string            `json:"product_name"`
	ProductUPC    *string           `json:"product_upc,omitempty"`
	Category      string            `json:"category"`
	CurrentStock  int               `json:"current_stock"`
	MinStock      int               `json:"min_stock"`
	MaxStock      int               `json:"max_stock"`
	LastRestocked *time.Time        `json:"last_restocked,omitempty"`
	Status        enums.StockStatus `json:"status"`
}

type service struct {
	repo Repository
}

// NewService wires the locations read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]LocationSummary, error) {
	rows, err := s.repo.ListWithStockSummary(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
	}

	summaries := make([]LocationSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, LocationSummary{
			ID:              row.ID,
			Code:            row.Code,
			Name:            row.Name,
			Address:         row.Address,
			ProductCount:    row.ProductCount,
			TotalStock:      row.TotalStock,
			LowStockCount:   row.LowStockCount,
			OutOfStockCount: row.OutOfStockCount,
			CreatedAt:       row.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*LocationDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location id required")
	}

	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location")
	}
	if location == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
	}

	rows, err := s.repo.ListInventory(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load location inventory")
	}

	items := make([]InventoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, InventoryItem{
			InventoryID:   row.InventoryID,
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			ProductUPC:    row.ProductUPC,
			Category:      row.Category,
			CurrentStock:  row.CurrentStock,
			MinStock:      row.MinStock,
			MaxStock:      row.MaxStock,
			LastRestocked: row.LastRestocked,
			Status:        enums.StockStatusFor(row.CurrentStock, row.MinStock),
		})
	}

	return &LocationDetail{
		ID:        location.ID,
		Code:      location.Code,
		Name:      location.Name,
		Address:   location.Address,
		CreatedAt: location.CreatedAt,
		Items:     items,
	}, nil
}
