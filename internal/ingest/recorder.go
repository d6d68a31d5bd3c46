package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/pkg/db/models"
	"github.com/vendhub/vendhub-backend/pkg/enums"
)

// saleQuantity is fixed: every source row represents exactly one unit sold.
const saleQuantity = 1

// Recorder appends sales facts for resolved transactions.
type Recorder struct {
	repo Repository
}

// NewRecorder builds a recorder over the provided repository.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Record appends one SalesTransaction tying the canonical transaction to
// its resolved location and product. The original row payload is kept
// verbatim for audit.
func (r *Recorder) Record(ctx context.Context, location *models.Location, product *models.Product, txn *Transaction, source enums.DataSource) (*models.SalesTransaction, error) {
	saleDate, err := time.Parse("2006-01-02", txn.SaleDate)
	if err != nil {
		return nil, &InvalidDateError{Value: txn.SaleDate}
	}

	rawRow, err := json.Marshal(txn.Raw)
	if err != nil {
		return nil, &PersistenceError{Op: "encode raw row", Err: err}
	}

	record := &models.SalesTransaction{
		ID:          uuid.New(),
		LocationID:  location.ID,
		ProductID:   product.ID,
		Quantity:    saleQuantity,
		UnitPrice:   txn.UnitPrice,
		TotalAmount: txn.TotalAmount,
		SaleDate:    saleDate,
		DataSource:  source,
		RawRow:      rawRow,
	}
	if err := r.repo.CreateSalesTransaction(ctx, record); err != nil {
		return nil, &PersistenceError{Op: "record sale", Err: err}
	}
	return record, nil
}
