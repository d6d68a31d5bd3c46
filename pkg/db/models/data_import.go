package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/pkg/enums"
)

// DataImport records one uploaded sales-export file. The row is created
// when the upload is accepted and updated once when the batch finishes,
// never per-row.
type DataImport struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Filename      string             `gorm:"column:filename;not null"`
	DataSource    enums.DataSource   `gorm:"column:data_source;not null"`
	Status        enums.ImportStatus `gorm:"column:status;not null;default:pending"`
	TotalRows     int                `gorm:"column:total_rows;not null;default:0"`
	ProcessedRows int                `gorm:"column:processed_rows;not null;default:0"`
	FailedRows    int                `gorm:"column:failed_rows;not null;default:0"`
	ErrorDetail   *string            `gorm:"column:error_detail"`
	CompletedAt   *time.Time         `gorm:"column:completed_at"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
