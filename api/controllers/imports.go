package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/api/responses"
	"github.com/vendhub/vendhub-backend/api/validators"
	importsvc "github.com/vendhub/vendhub-backend/internal/imports"
	"github.com/vendhub/vendhub-backend/pkg/enums"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
	"github.com/vendhub/vendhub-backend/pkg/logger"
	"github.com/vendhub/vendhub-backend/pkg/pagination"
)

const maxFilenameLen = 255

type createImportRequest struct {
	Filename   string `json:"filename" validate:"required"`
	DataSource string `json:"data_source" validate:"required"`
	CSVContent string `json:"csv_content" validate:"required"`
}

func (r createImportRequest) toInput() (importsvc.RunInput, error) {
	source, err := enums.ParseDataSource(strings.TrimSpace(r.DataSource))
	if err != nil {
		return importsvc.RunInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid data source")
	}
	return importsvc.RunInput{
		Filename:   validators.SanitizeString(r.Filename, maxFilenameLen),
		DataSource: source,
		CSVContent: r.CSVContent,
	}, nil
}

type importReceipt struct {
	ImportID  uuid.UUID          `json:"import_id"`
	Status    enums.ImportStatus `json:"status"`
	Total     int                `json:"total"`
	Processed int                `json:"processed"`
	Failed    int                `json:"failed"`
	Errors    []string           `json:"errors,omitempty"`
}

// CreateImport accepts one sales export and runs it through the pipeline
// synchronously. The response carries the full per-row error list even
// when the persisted record caps it.
func CreateImport(svc importsvc.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "import service unavailable"))
			return
		}

		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		var payload createImportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Run(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, importReceipt{
			ImportID:  result.Import.ID,
			Status:    result.Import.Status,
			Total:     result.Batch.Total,
			Processed: result.Batch.Processed,
			Failed:    result.Batch.Failed,
			Errors:    result.Batch.Errors,
		})
	}
}

// ListImports returns import history, newest first.
func ListImports(svc importsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "import service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		list, err := svc.List(r.Context(), importsvc.ListParams{Limit: limit, Cursor: cursor})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetImport returns one import record by id.
func GetImport(svc importsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "import service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "importId"))
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "import id is required"))
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid import id"))
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
