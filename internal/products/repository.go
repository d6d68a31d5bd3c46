package products

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendhub/vendhub-backend/pkg/enums"
	"github.com/vendhub/vendhub-backend/pkg/pagination"
)

// Repository exposes the catalog read side.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, params listProductsParams) ([]catalogRow, *pagination.Cursor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a products repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type listProductsParams struct {
	Limit    int
	Cursor   *pagination.Cursor
	Category *enums.ProductCategory
	Query    string
}

// catalogRow is one catalog entry plus how widely it is stocked.
type catalogRow struct {
	ID            uuid.UUID
	Name          string
	UPC           *string
	Category      string
	LocationCount int
	TotalStock    int
	CreatedAt     time.Time
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context, params listProductsParams) ([]catalogRow, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(`p.id,
p.name,
p.upc,
p.category,
p.created_at,
COUNT(il.id) AS location_count,
COALESCE(SUM(il.current_stock), 0) AS total_stock`).
		Joins("LEFT JOIN inventory_levels il ON il.product_id = p.id")

	if params.Category != nil {
		qb = qb.Where("p.category = ?", *params.Category)
	}
	if search := strings.TrimSpace(params.Query); search != "" {
		qb = qb.Where("LOWER(p.name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if params.Cursor != nil {
		qb = qb.Where(
			"(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	var rows []catalogRow
	err := qb.Group("p.id, p.name, p.upc, p.category, p.created_at").
		Order("p.created_at DESC, p.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		return rows, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return rows, nil, nil
}
