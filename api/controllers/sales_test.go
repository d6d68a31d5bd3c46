package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vendhub/vendhub-backend/internal/sales"
	pkgerrors "github.com/vendhub/vendhub-backend/pkg/errors"
)

type stubSalesService struct {
	result  *sales.ListResult
	listErr error
	last    sales.ListInput
}

func (s *stubSalesService) ListByLocation(_ context.Context, input sales.ListInput) (*sales.ListResult, error) {
	s.last = input
	return s.result, s.listErr
}

func TestLocationSalesSuccess(t *testing.T) {
	locationID := uuid.New()
	svc := &stubSalesService{result: &sales.ListResult{
		Sales: []sales.SaleView{
			{ID: uuid.New(), ProductName: "Coca-Cola 12oz", Quantity: 3, UnitPrice: decimal.RequireFromString("2.49")},
		},
		NextCursor: "next",
	}}
	handler := LocationSales(svc, nil)

	req := withRouteParam(httptest.NewRequest(http.MethodGet, "/?limit=10&cursor=abc", nil), "locationId", locationID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.last.LocationID != locationID {
		t.Fatalf("location not forwarded: %+v", svc.last)
	}
	if svc.last.Pagination.Limit != 10 || svc.last.Pagination.Cursor != "abc" {
		t.Fatalf("pagination not forwarded: %+v", svc.last)
	}

	var envelope struct {
		Data sales.ListResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Sales) != 1 {
		t.Fatalf("unexpected page: %+v", envelope.Data)
	}
	if envelope.Data.Sales[0].UnitPrice.String() != "2.49" {
		t.Fatalf("unexpected unit price %s", envelope.Data.Sales[0].UnitPrice)
	}
}

func TestLocationSalesRejectsBadID(t *testing.T) {
	handler := LocationSales(&stubSalesService{}, nil)

	req := withRouteParam(httptest.NewRequest(http.MethodGet, "/", nil), "locationId", "not-a-uuid")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLocationSalesUnknownLocation(t *testing.T) {
	svc := &stubSalesService{listErr: pkgerrors.New(pkgerrors.CodeNotFound, "location not found")}
	handler := LocationSales(svc, nil)

	req := withRouteParam(httptest.NewRequest(http.MethodGet, "/", nil), "locationId", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
