package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/api/responses"
	"github.com/vendhub/vendhub-backend/api/validators"
	inventorysvc "github.com/vendhub/vendhub-backend/internal/inventory"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
	"github.com/vendhub/vendhub-backend/pkg/logger"
)

// Pointer fields so an explicit zero survives the required check.
type editInventoryRequest struct {
	CurrentStock *int `json:"current_stock" validate:"required,min=0"`
	MinStock     *int `json:"min_stock" validate:"required,min=0"`
	MaxStock     *int `json:"max_stock" validate:"required,min=0"`
}

// EditInventory is the location detail page's save action: a full
// replacement of the editable fields on one tracked pair.
func EditInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		rawLocation := strings.TrimSpace(chi.URLParam(r, "locationId"))
		if rawLocation == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "location id is required"))
			return
		}
		locationID, err := uuid.Parse(rawLocation)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid location id"))
			return
		}

		rawProduct := strings.TrimSpace(chi.URLParam(r, "productId"))
		if rawProduct == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}
		productID, err := uuid.Parse(rawProduct)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload editInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		level, err := svc.Edit(r.Context(), inventorysvc.EditInput{
			LocationID:   locationID,
			ProductID:    productID,
			CurrentStock: *payload.CurrentStock,
			MinStock:     *payload.MinStock,
			MaxStock:     *payload.MaxStock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, level)
	}
}
