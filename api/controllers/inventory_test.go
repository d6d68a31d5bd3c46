package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vendhub/vendhub-backend/internal/inventory"
	"github.com/vendhub/vendhub-backend/pkg/enums"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
)

type stubInventoryService struct {
	view    *inventory.LevelView
	editErr error
	last    inventory.EditInput
}

func (s *stubInventoryService) Edit(_ context.Context, input inventory.EditInput) (*inventory.LevelView, error) {
	s.last = input
	return s.view, s.editErr
}

func editInventoryRequestFor(locationID, productID uuid.UUID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("locationId", locationID.String())
	routeCtx.URLParams.Add("productId", productID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestEditInventorySuccess(t *testing.T) {
	locationID := uuid.New()
	productID := uuid.New()
	svc := &stubInventoryService{view: &inventory.LevelView{
		LocationID:   locationID,
		ProductID:    productID,
		CurrentStock: 12,
		MinStock:     4,
		MaxStock:     50,
		Status:       enums.StockStatusGood,
	}}
	handler := EditInventory(svc, nil)

	req := editInventoryRequestFor(locationID, productID, `{"current_stock":12,"min_stock":4,"max_stock":50}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.last.CurrentStock != 12 || svc.last.MinStock != 4 || svc.last.MaxStock != 50 {
		t.Fatalf("input not forwarded: %+v", svc.last)
	}
	var envelope struct {
		Data inventory.LevelView `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != enums.StockStatusGood {
		t.Fatalf("unexpected status %s", envelope.Data.Status)
	}
}

func TestEditInventoryAcceptsExplicitZero(t *testing.T) {
	locationID := uuid.New()
	productID := uuid.New()
	svc := &stubInventoryService{view: &inventory.LevelView{Status: enums.StockStatusOut}}
	handler := EditInventory(svc, nil)

	req := editInventoryRequestFor(locationID, productID, `{"current_stock":0,"min_stock":0,"max_stock":0}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("zero counts are valid, got %d", rec.Code)
	}
	if svc.last.CurrentStock != 0 {
		t.Fatalf("expected zero forwarded, got %d", svc.last.CurrentStock)
	}
}

func TestEditInventoryRequiresAllFields(t *testing.T) {
	svc := &stubInventoryService{}
	handler := EditInventory(svc, nil)

	req := editInventoryRequestFor(uuid.New(), uuid.New(), `{"current_stock":5,"min_stock":2}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Details["max_stock"] != "is required" {
		t.Fatalf("expected max_stock detail, got %v", envelope.Error.Details)
	}
}

func TestEditInventoryRejectsNegativeStock(t *testing.T) {
	svc := &stubInventoryService{}
	handler := EditInventory(svc, nil)

	req := editInventoryRequestFor(uuid.New(), uuid.New(), `{"current_stock":-1,"min_stock":0,"max_stock":10}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestEditInventoryRejectsUnknownFields(t *testing.T) {
	svc := &stubInventoryService{}
	handler := EditInventory(svc, nil)

	req := editInventoryRequestFor(uuid.New(), uuid.New(), `{"current_stock":5,"min_stock":2,"max_stock":10,"status":"good"}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status is derived, payload must not set it: got %d", rec.Code)
	}
}

func TestEditInventoryUntrackedPair(t *testing.T) {
	svc := &stubInventoryService{editErr: pkgerrors.New(pkgerrors.CodeNotFound, "no inventory tracked for this location and product")}
	handler := EditInventory(svc, nil)

	req := editInventoryRequestFor(uuid.New(), uuid.New(), `{"current_stock":5,"min_stock":2,"max_stock":10}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestEditInventoryRejectsBadProductID(t *testing.T) {
	handler := EditInventory(&stubInventoryService{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/", bytes.NewReader([]byte(`{}`)))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("locationId", uuid.NewString())
	routeCtx.URLParams.Add("productId", "nope")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
