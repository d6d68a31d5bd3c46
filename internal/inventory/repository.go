package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendhub/vendhub-backend/pkg/db/models"
)

// Repository exposes persistence for inventory levels.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByPair(ctx context.Context, locationID, productID uuid.UUID) (*models.InventoryLevel, error)
	Save(ctx context.Context, level *models.InventoryLevel) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByPair(ctx context.Context, locationID, productID uuid.UUID) (*models.InventoryLevel, error) {
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

func (r *repository) Save(ctx context.Context, level *models.InventoryLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}
