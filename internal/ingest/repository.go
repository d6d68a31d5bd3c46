package ingest

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendhub/vendhub-backend/pkg/db/models"
)

// Repository is the pipeline's persistence boundary: exact lookups, one
// fuzzy lookup, inserts, and a single clamped stock update. Find methods
// return (nil, nil) when no row matches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindLocationByCodes(ctx context.Context, codes []string) (*models.Location, error)
	CreateLocation(ctx context.Context, location *models.Location) error

	FindProductByUPC(ctx context.Context, upc string) (*models.Product, error)
	FirstProductNameContaining(ctx context.Context, fragment string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error

	CreateSalesTransaction(ctx context.Context, record *models.SalesTransaction) error

	FindInventory(ctx context.Context, locationID, productID uuid.UUID) (*models.InventoryLevel, error)
	CreateInventory(ctx context.Context, level *models.InventoryLevel) error
	AdjustInventoryStock(ctx context.Context, id uuid.UUID, delta int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a pipeline repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindLocationByCodes(ctx context.Context, codes []string) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).
		Where("code IN ?", codes).
		First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) CreateLocation(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *repository) FindProductByUPC(ctx context.Context, upc string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("upc = ?", upc).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FirstProductNameContaining returns the oldest product whose name contains
// the fragment, case-insensitively. Ordering by creation makes the fuzzy
// match deterministic when several products qualify.
func (r *repository) FirstProductNameContaining(ctx context.Context, fragment string) (*models.Product, error) {
	pattern := "%" + strings.ToLower(fragment) + "%"
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("created_at ASC").
		Order("id ASC").
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repository) CreateSalesTransaction(ctx context.Context, record *models.SalesTransaction) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindInventory(ctx context.Context, locationID, productID uuid.UUID) (*models.InventoryLevel, error) {
	var level models.InventoryLevel
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND product_id = ?", locationID, productID).
		First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *repository) CreateInventory(ctx context.Context, level *models.InventoryLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

// AdjustInventoryStock applies the delta in one statement, clamping the
// result at zero so stock never goes negative.
func (r *repository) AdjustInventoryStock(ctx context.Context, id uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryLevel{}).
		Where("id = ?", id).
		Update("current_stock", gorm.Expr(
			"CASE WHEN current_stock + ? < 0 THEN 0 ELSE current_stock + ? END",
			delta, delta,
		))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
