package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/vendhub/vendhub-backend/pkg/enums"
)

func TestNormalizeRowVendorA(t *testing.T) {
	t.Parallel()

	row := Row{
		"Location_ID":  "2.0_LOC001",
		"Product_Name": "Celsius Arctic Vibe",
		"Scancode":     "889392014",
		"Trans_Date":   "3/5/2024",
		"Price":        "$1.99",
		"Total_Amount": "$1.99",
	}

	txn, err := NormalizeRow(enums.DataSourceVendorA, row)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if txn.LocationCode != "2.0_LOC001" {
		t.Fatalf("location code must stay as supplied, got %q", txn.LocationCode)
	}
	if txn.ProductName != "Celsius Arctic Vibe" {
		t.Fatalf("unexpected product name %q", txn.ProductName)
	}
	if txn.ProductUPC != "889392014" {
		t.Fatalf("unexpected upc %q", txn.ProductUPC)
	}
	if txn.SaleDate != "2024-03-05" {
		t.Fatalf("expected slash date reformatted with padding, got %q", txn.SaleDate)
	}
	if txn.UnitPrice.String() != "1.99" {
		t.Fatalf("unexpected unit price %s", txn.UnitPrice)
	}
	if txn.Raw["Trans_Date"] != "3/5/2024" {
		t.Fatalf("raw row must keep original values, got %#v", txn.Raw)
	}
}

func TestNormalizeRowVendorB(t *testing.T) {
	t.Parallel()

	row := Row{
		"Site_Code":        "LOC001",
		"Item_Description": "Muscle Milk Vanilla",
		"UPC":              "520000123",
		"Sale_Date":        "2024-03-05",
		"Unit_Price":       "3.49",
		"Final_Total":      "3.49",
	}

	txn, err := NormalizeRow(enums.DataSourceVendorB, row)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if txn.SaleDate != "2024-03-05" {
		t.Fatalf("dash date must pass through, got %q", txn.SaleDate)
	}
	if txn.TotalAmount.String() != "3.49" {
		t.Fatalf("unexpected total %s", txn.TotalAmount)
	}
}

func TestNormalizeRowUnknownSource(t *testing.T) {
	t.Parallel()

	if _, err := NormalizeRow(enums.DataSource("vendor_z"), Row{}); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestNormalizeRowMissingFieldsAccumulate(t *testing.T) {
	t.Parallel()

	row := Row{
		"Site_Code":        "LOC001",
		"Item_Description": "  ",
		"UPC":              "",
		"Sale_Date":        "2024-03-05",
		"Unit_Price":       "3.49",
		"Final_Total":      "3.49",
	}

	_, err := NormalizeRow(enums.DataSourceVendorB, row)
	if err == nil {
		t.Fatal("expected missing field error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `"Item_Description"`) || !strings.Contains(msg, `"UPC"`) {
		t.Fatalf("expected both blank columns reported, got %q", msg)
	}

	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %T", err)
	}
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "03/05/2024", want: "2024-03-05"},
		{raw: "3/5/2024", want: "2024-03-05"},
		{raw: "12/31/2023", want: "2023-12-31"},
		{raw: "2024-03-05", want: "2024-03-05"},
		{raw: " 2024-03-05 ", want: "2024-03-05"},
		{raw: "03/05", wantErr: true},
		{raw: "03/05/2024/9", wantErr: true},
		{raw: "20240305", wantErr: true},
		{raw: "soon", wantErr: true},
	}

	for _, tc := range cases {
		got, err := normalizeDate(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("normalizeDate(%q): expected error", tc.raw)
			}
			var invalid *InvalidDateError
			if !errors.As(err, &invalid) {
				t.Fatalf("normalizeDate(%q): expected InvalidDateError, got %T", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("normalizeDate(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("normalizeDate(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "1.99", want: "1.99"},
		{raw: "$1.99", want: "1.99"},
		{raw: " $ 2,500.00 ", want: "2500"},
		{raw: "USD 3.49", want: "3.49"},
		{raw: "0", want: "0"},
		{raw: "($1.99)", want: "1.99"},
		{raw: "-1.99", wantErr: true},
		{raw: "free", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := parseAmount(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseAmount(%q): expected error", tc.raw)
			}
			var invalid *InvalidAmountError
			if !errors.As(err, &invalid) {
				t.Fatalf("parseAmount(%q): expected InvalidAmountError, got %T", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseAmount(%q): %v", tc.raw, err)
		}
		if got.String() != tc.want {
			t.Fatalf("parseAmount(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeLocationCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "2.0_LOC001", want: "LOC001"},
		{in: "LOC001", want: "LOC001"},
		{in: "  2.0_LOC001  ", want: "LOC001"},
		{in: "2.0_", want: ""},
		{in: "LOC2.0_01", want: "LOC2.0_01"},
	}
	for _, tc := range cases {
		if got := NormalizeLocationCode(tc.in); got != tc.want {
			t.Fatalf("NormalizeLocationCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
