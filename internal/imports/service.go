package imports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/internal/ingest"
	"github.com/vendhub/vendhub-backend/pkg/db/models"
	"github.com/vendhub/vendhub-backend/pkg/enums"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
	"github.com/vendhub/vendhub-backend/pkg/logger"
	"github.com/vendhub/vendhub-backend/pkg/pagination"
)

// Service owns the import record lifecycle around the reconciliation
// pipeline: accept an upload, run the batch, finalize the record.
type Service interface {
	Run(ctx context.Context, input RunInput) (*RunResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.DataImport, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

// RunInput is one accepted upload.
type RunInput struct {
	Filename   string
	DataSource enums.DataSource
	CSVContent string
}

// RunResult pairs the finalized import record with the in-memory batch
// outcome. The record's error detail may be capped; Batch always carries
// the full error list for the response body.
type RunResult struct {
	Import *models.DataImport
	Batch  *ingest.BatchResult
}

// ListParams configures pagination for import history.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult wraps one page of import records.
type ListResult struct {
	Items  []models.DataImport `json:"items"`
	Cursor string              `json:"cursor"`
}

type service struct {
	repo          Repository
	pipeline      ingest.Service
	logg          *logger.Logger
	maxErrorLines int
}

// NewService wires the import lifecycle service. maxErrorLines caps how
// many row errors are persisted onto the record; zero means no cap.
func NewService(repo Repository, pipeline ingest.Service, logg *logger.Logger, maxErrorLines int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("imports repository required")
	}
	if pipeline == nil {
		return nil, fmt.Errorf("ingest service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:          repo,
		pipeline:      pipeline,
		logg:          logg,
		maxErrorLines: maxErrorLines,
	}, nil
}

// Run records the upload, feeds it through the pipeline and finalizes the
// record. A structurally invalid file finalizes the record as failed and
// returns the batch error; row failures leave the record completed with
// counts and detail.
func (s *service) Run(ctx context.Context, input RunInput) (*RunResult, error) {
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename required")
	}
	if !input.DataSource.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown data source %q", input.DataSource))
	}
	if strings.TrimSpace(input.CSVContent) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "csv content required")
	}

	record := &models.DataImport{
		ID:         uuid.New(),
		Filename:   filename,
		DataSource: input.DataSource,
		Status:     enums.ImportStatusPending,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create import record")
	}

	ctx = s.logg.WithImportID(ctx, record.ID.String())

	record.Status = enums.ImportStatusProcessing
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark import processing")
	}

	batch, err := s.pipeline.ProcessBatch(ctx, ingest.BatchInput{
		RawCSV:     input.CSVContent,
		DataSource: input.DataSource,
	})
	if err != nil {
		s.finalizeFailed(ctx, record, err)
		return nil, err
	}

	now := time.Now().UTC()
	record.Status = enums.ImportStatusCompleted
	record.TotalRows = batch.Total
	record.ProcessedRows = batch.Processed
	record.FailedRows = batch.Failed
	record.CompletedAt = &now
	if len(batch.Errors) > 0 {
		detail := s.joinErrors(batch.Errors)
		record.ErrorDetail = &detail
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize import record")
	}

	return &RunResult{Import: record, Batch: batch}, nil
}

// finalizeFailed marks the record failed with the batch error. The record
// write is best effort: the batch error is what the caller needs to see.
func (s *service) finalizeFailed(ctx context.Context, record *models.DataImport, batchErr error) {
	now := time.Now().UTC()
	detail := batchErr.Error()
	record.Status = enums.ImportStatusFailed
	record.ErrorDetail = &detail
	record.CompletedAt = &now
	if err := s.repo.Update(ctx, record); err != nil {
		s.logg.Error(ctx, "failed to finalize failed import", err)
	}
}

func (s *service) joinErrors(errs []string) string {
	if s.maxErrorLines > 0 && len(errs) > s.maxErrorLines {
		capped := make([]string, 0, s.maxErrorLines+1)
		capped = append(capped, errs[:s.maxErrorLines]...)
		capped = append(capped, fmt.Sprintf("... and %d more", len(errs)-s.maxErrorLines))
		return strings.Join(capped, "\n")
	}
	return strings.Join(errs, "\n")
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.DataImport, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "import id required")
	}
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load import record")
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "import not found")
	}
	return record, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listImportsParams{Limit: params.Limit}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	records, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list imports")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: records, Cursor: cursor}, nil
}
