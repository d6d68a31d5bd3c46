package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/pkg/enums"
)

// Product is a catalog item seen in at least one sales export. UPC is the
// natural key when present; name-only products carry a nil UPC.
type Product struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name      string                `gorm:"column:name;not null"`
	UPC       *string               `gorm:"column:upc;uniqueIndex:idx_products_upc"`
	Category  enums.ProductCategory `gorm:"column:category;not null;default:Other"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
