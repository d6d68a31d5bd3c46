package locations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendhub/vendhub-backend/pkg/db/models"
)

// Repository exposes the read side of the dashboard: location summaries
// with stock aggregates and per-location inventory detail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListWithStockSummary(ctx context.Context) ([]locationSummaryRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	ListInventory(ctx context.Context, locationID uuid.UUID) ([]inventoryRow, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a locations repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type locationSummaryRow struct {
	ID              uuid.UUID
	Code            string
	Name            string
	Address         *string
	ProductCount    int
	TotalStock      int
	LowStockCount   int
	OutOfStockCount int
	CreatedAt       time.Time
}

type inventoryRow struct {
	InventoryID   uuid.UUID
	ProductID     uuid.UUID
	ProductName   string
	ProductUPC    *string
	Category      string
	CurrentStock  int
	MinStock      int
	MaxStock      int
	LastRestocked *time.Time
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListWithStockSummary(ctx context.Context) ([]locationSummaryRow, error) {
	var rows []locationSummaryRow
	err := r.db.WithContext(ctx).
		Table("locations l").
		Select(`l.id,
l.code,
l.name,
l.address,
l.created_at,
COUNT(il.id) AS product_count,
COALESCE(SUM(il.current_stock), 0) AS total_stock,
COALESCE(SUM(CASE WHEN il.current_stock <= 0 THEN 1 ELSE 0 END), 0) AS out_of_stock_count,
COALESCE(SUM(CASE WHEN il.current_stock > 0 AND il.current_stock <= il.min_stock THEN 1 ELSE 0 END), 0) AS low_stock_count`).
		Joins("LEFT JOIN inventory_levels il ON il.location_id = l.id").
		Group("l.id, l.code, l.name, l.address, l.created_at").
		Order("l.code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) ListInventory(ctx context.Context, locationID uuid.UUID) ([]inventoryRow, error) {
	var rows []inventoryRow
	err := r.db.WithContext(ctx).
		Table("inventory_levels il").
		Select(`il.id AS inventory_id,
il.product_id,
p.name AS product_name,
p.upc AS product_upc,
p.category,
il.current_stock,
il.min_stock,
il.max_stock,
il.last_restocked`).
		Joins("JOIN products p ON p.id = il.product_id").
		Where("il.location_id = ?", locationID).
		Order("p.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
