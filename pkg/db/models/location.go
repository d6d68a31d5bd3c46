package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a vending machine site. The code is the vendor-supplied
// business key; rows are created on first sighting during ingestion and
// never deleted by the pipeline.
type Location struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Code      string    `gorm:"column:code;not null;uniqueIndex:idx_locations_code"`
	Name      string    `gorm:"column:name;not null"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
