package ingest

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vendhub/vendhub-backend/pkg/db"
	"github.com/vendhub/vendhub-backend/pkg/enums"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
	"github.com/vendhub/vendhub-backend/pkg/logger"
	"github.com/vendhub/vendhub-backend/pkg/metrics"
)

// Service runs uploaded sales exports through the reconciliation pipeline.
type Service interface {
	ProcessBatch(ctx context.Context, input BatchInput) (*BatchResult, error)
}

// BatchInput is the upload boundary: raw file text plus the vendor format
// it claims to follow.
type BatchInput struct {
	RawCSV     string
	DataSource enums.DataSource
}

// BatchResult reports one finished batch. The caller owns persisting it
// onto the DataImport record.
type BatchResult struct {
	Total     int
	Processed int
	Failed    int
	Errors    []string
}

type service struct {
	dbClient *db.Client
	repo     Repository
	logg     *logger.Logger
	metrics  *metrics.IngestMetrics
}

// NewService wires the batch orchestrator. Metrics may be nil; everything
// else is required.
func NewService(dbClient *db.Client, repo Repository, logg *logger.Logger, ingestMetrics *metrics.IngestMetrics) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("ingest repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		dbClient: dbClient,
		repo:     repo,
		logg:     logg,
		metrics:  ingestMetrics,
	}, nil
}

// ProcessBatch drives the per-row pipeline over a whole file. A
// structurally invalid file fails as a whole and processes nothing; a
// failing row is counted, its message recorded, and the loop moves on.
// Rows run strictly in file order.
func (s *service) ProcessBatch(ctx context.Context, input BatchInput) (*BatchResult, error) {
	if !input.DataSource.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown data source %q", input.DataSource))
	}

	table, err := ParseTable(input.RawCSV)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	result := &BatchResult{Total: len(table.Rows)}
	for i, row := range table.Rows {
		if err := s.processRow(ctx, input.DataSource, row); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		result.Processed++
	}
	elapsed := time.Since(started)

	s.metrics.ObserveBatch(input.DataSource.String(), result.Processed, result.Failed, elapsed)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"data_source": input.DataSource.String(),
		"total":       result.Total,
		"processed":   result.Processed,
		"failed":      result.Failed,
		"duration_ms": elapsed.Milliseconds(),
	})
	if result.Failed > 0 {
		s.logg.Warn(logCtx, "import batch finished with row failures")
	} else {
		s.logg.Info(logCtx, "import batch finished")
	}

	return result, nil
}

// processRow runs normalize, resolve, record, adjust for one data row.
// The three persistence stages share one transaction: a failure mid-row
// leaves neither a sales fact without its stock decrement nor the reverse.
func (s *service) processRow(ctx context.Context, source enums.DataSource, row Row) error {
	txn, err := NormalizeRow(source, row)
	if err != nil {
		return err
	}

	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		resolver := NewResolver(repo)

		location, err := resolver.ResolveLocation(ctx, txn.LocationCode)
		if err != nil {
			return err
		}
		product, err := resolver.ResolveProduct(ctx, txn.ProductName, txn.ProductUPC)
		if err != nil {
			return err
		}

		if _, err := NewRecorder(repo).Record(ctx, location, product, txn, source); err != nil {
			return err
		}
		return NewAdjuster(repo).Adjust(ctx, location.ID, product.ID, -saleQuantity)
	})
}
