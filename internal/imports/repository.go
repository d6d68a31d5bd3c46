package imports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendhub/vendhub-backend/pkg/db/models"
	"github.com/vendhub/vendhub-backend/pkg/pagination"
)

// Repository exposes persistence for import records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.DataImport) error
	Update(ctx context.Context, record *models.DataImport) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.DataImport, error)
	List(ctx context.Context, params listImportsParams) ([]models.DataImport, *pagination.Cursor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an imports repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type listImportsParams struct {
	Limit  int
	Cursor *pagination.Cursor
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *models.DataImport) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) Update(ctx context.Context, record *models.DataImport) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DataImport, error) {
	var record models.DataImport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) List(ctx context.Context, params listImportsParams) ([]models.DataImport, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.DataImport{})
	if params.Cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	var records []models.DataImport
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, nil, err
	}

	if len(records) > normalized {
		records = records[:normalized]
		last := records[len(records)-1]
		return records, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return records, nil, nil
}
