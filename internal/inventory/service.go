package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vendhub/vendhub-backend/pkg/db"
	"github.com/vendhub/vendhub-backend/pkg/enums"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
	"github.com/vendhub/vendhub-backend/pkg/logger"
)

// Service applies manual stock edits from the location detail page.
type Service interface {
	Edit(ctx context.Context, input EditInput) (*LevelView, error)
}

// EditInput is a full replacement of the editable fields on one inventory
// row. The row must already exist; pairs are only created by ingestion.
type EditInput struct {
	LocationID   uuid.UUID
	ProductID    uuid.UUID
	CurrentStock int
	MinStock     int
	MaxStock     int
}

// LevelView is the updated row echoed back to the caller, with the stock
// status derived from the new numbers.
type LevelView struct {
	InventoryID   uuid.UUID         `json:"inventory_id"`
	LocationID    uuid.UUID         `json:"location_id"`
	ProductID     uuid.UUID         `json:"product_id"`
	CurrentStock  int               `json:"current_stock"`
	MinStock      int               `json:"min_stock"`
	MaxStock      int               `json:"max_stock"`
	LastRestocked *time.Time        `json:"last_restocked,omitempty"`
	Status        enums.StockStatus `json:"status"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type service struct {
	dbClient *db.Client
	repo     Repository
	logg     *logger.Logger
}

// NewService wires the inventory edit service.
func NewService(dbClient *db.Client, repo Repository, logg *logger.Logger) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{dbClient: dbClient, repo: repo, logg: logg}, nil
}

func (s *service) Edit(ctx context.Context, input EditInput) (*LevelView, error) {
	if input.LocationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location id required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.CurrentStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "current_stock cannot be negative")
	}
	if input.MinStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_stock cannot be negative")
	}
	if input.MaxStock < input.MinStock {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max_stock cannot be below min_stock")
	}

	var view *LevelView
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		level, err := repo.FindByPair(ctx, input.LocationID, input.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory level")
		}
		if level == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no inventory tracked for this location and product")
		}

		restocked := input.CurrentStock > level.CurrentStock
		if restocked {
			now := time.Now().UTC()
			level.LastRestocked = &now
		}
		level.CurrentStock = input.CurrentStock
		level.MinStock = input.MinStock
		level.MaxStock = input.MaxStock

		if err := repo.Save(ctx, level); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save inventory level")
		}

		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"location_id":   input.LocationID.String(),
			"product_id":    input.ProductID.String(),
			"current_stock": input.CurrentStock,
			"restocked":     restocked,
		}), "inventory level updated")

		view = &LevelView{
			InventoryID:   level.ID,
			LocationID:    level.LocationID,
			ProductID:     level.ProductID,
			CurrentStock:  level.CurrentStock,
			MinStock:      level.MinStock,
			MaxStock:      level.MaxStock,
			LastRestocked: level.LastRestocked,
			Status:        enums.StockStatusFor(level.CurrentStock, level.MinStock),
			UpdatedAt:     level.UpdatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
