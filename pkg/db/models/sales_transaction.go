package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendhub/vendhub-backend/pkg/enums"
)

// SalesTransaction is an append-only fact row for one unit sold. RawRow
// preserves the original CSV field map for audit; rows are never updated
// or deleted.
type SalesTransaction struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	LocationID  uuid.UUID        `gorm:"column:location_id;type:uuid;not null;index"`
	ProductID   uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index"`
	Quantity    int              `gorm:"column:quantity;not null;default:1"`
	UnitPrice   decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TotalAmount decimal.Decimal  `gorm:"column:total_amount;type:numeric(12,2);not null"`
	SaleDate    time.Time        `gorm:"column:sale_date;type:date;not null"`
	DataSource  enums.DataSource `gorm:"column:data_source;not null"`
	RawRow      json.RawMessage  `gorm:"column:raw_row;type:jsonb"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
}
