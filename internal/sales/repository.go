package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vendhub/vendhub-backend/pkg/db/models"
	"github.com/vendhub/vendhub-backend/pkg/pagination"
)

// Repository exposes the sales history read side.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	ListByLocation(ctx context.Context, params listSalesParams) ([]saleRow, *pagination.Cursor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a sales repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type listSalesParams struct {
	LocationID uuid.UUID
	Limit      int
	Cursor     *pagination.Cursor
}

// saleRow is one sale joined with its product for display.
type saleRow struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	SaleDate    time.Time
	DataSource  string
	CreatedAt   time.Time
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindLocationByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
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

// ListByLocation pages through a location's sales newest first. Exports
// carry dates without times, so ordering is by sale_date with the row id
// as a stable tiebreak.
func (r *repository) ListByLocation(ctx context.Context, params listSalesParams) ([]saleRow, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	qb := r.db.WithContext(ctx).
		Table("sales_transactions st").
		Select(`st.id,
st.product_id,
p.name AS product_name,
st.quantity,
st.unit_price,
st.total_amount,
st.sale_date,
st.data_source,
st.created_at`).
		Joins("JOIN products p ON p.id = st.product_id").
		Where("st.location_id = ?", params.LocationID)

	if params.Cursor != nil {
		qb = qb.Where(
			"(st.sale_date < ?) OR (st.sale_date = ? AND st.id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}

	var rows []saleRow
	err := qb.Order("st.sale_date DESC, st.id DESC").Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[len(rows)-1]
		return rows, &pagination.Cursor{CreatedAt: last.SaleDate, ID: last.ID}, nil
	}
	return rows, nil, nil
}
