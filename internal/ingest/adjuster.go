package ingest

import (
	"context"

	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/pkg/db/models"
)

// Defaults seeded onto inventory rows created by the pipeline. The seed
// stock assumes a freshly stocked slot rather than starting from the
// delta, so the first sale of a new product does not immediately read as
// out of stock.
const (
	defaultSeedStock = 10
	defaultMinStock  = 5
	defaultMaxStock  = 50
)

// Adjuster maintains inventory rows as sales flow through the pipeline.
type Adjuster struct {
	repo Repository
}

// NewAdjuster builds an adjuster over the provided repository.
func NewAdjuster(repo Repository) *Adjuster {
	return &Adjuster{repo: repo}
}

// Adjust ensures the (location, product) inventory row exists and applies
// the signed delta, clamped so current stock never drops below zero.
func (a *Adjuster) Adjust(ctx context.Context, locationID, productID uuid.UUID, delta int) error {
	level, err := a.repo.FindInventory(ctx, locationID, productID)
	if err != nil {
		return &PersistenceError{Op: "inventory lookup", Err: err}
	}

	if level == nil {
		level = &models.InventoryLevel{
			ID:           uuid.New(),
			LocationID:   locationID,
			ProductID:    productID,
			CurrentStock: defaultSeedStock,
			MinStock:     defaultMinStock,
			MaxStock:     defaultMaxStock,
		}
		if err := a.repo.CreateInventory(ctx, level); err != nil {
			return &PersistenceError{Op: "inventory create", Err: err}
		}
	}

	if err := a.repo.AdjustInventoryStock(ctx, level.ID, delta); err != nil {
		return &PersistenceError{Op: "inventory adjust", Err: err}
	}
	return nil
}
