package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryLevel tracks stock for one (location, product) pair. Rows are
// created lazily the first time a transaction touches the pair.
// CurrentStock never goes negative; adjustments clamp at zero.
type InventoryLevel struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	LocationID    uuid.UUID  `gorm:"column:location_id;type:uuid;not null;uniqueIndex:idx_inventory_location_product"`
	ProductID     uuid.UUID  `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_inventory_location_product"`
	CurrentStock  int        `gorm:"column:current_stock;not null;default:0"`
	MinStock      int        `gorm:"column:min_stock;not null;default:0"`
	MaxStock      int        `gorm:"column:max_stock;not null;default:0"`
	LastRestocked *time.Time `gorm:"column:last_restocked"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
