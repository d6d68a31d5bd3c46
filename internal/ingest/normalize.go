package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/vendhub/vendhub-backend/pkg/enums"
)

// legacyCodePrefix is a migration artifact some vendor exports still carry
// in front of the real site code.
const legacyCodePrefix = "2.0_"

// Transaction is the canonical, vendor-agnostic form of one sales row.
// LocationCode is the as-supplied value; Raw preserves the full field map
// for audit.
type Transaction struct {
	LocationCode string
	ProductName  string
	ProductUPC   string
	SaleDate     string
	UnitPrice    decimal.Decimal
	TotalAmount  decimal.Decimal
	Raw          Row
}

type rowFormat struct {
	locationCol string
	nameCol     string
	upcCol      string
	dateCol     string
	priceCol    string
	totalCol    string
}

func (f rowFormat) columns() []string {
	return []string{f.locationCol, f.nameCol, f.upcCol, f.dateCol, f.priceCol, f.totalCol}
}

var rowFormats = map[enums.DataSource]rowFormat{
	enums.DataSourceVendorA: {
		locationCol: "Location_ID",
		nameCol:     "Product_Name",
		upcCol:      "Scancode",
		dateCol:     "Trans_Date",
		priceCol:    "Price",
		totalCol:    "Total_Amount",
	},
	enums.DataSourceVendorB: {
		locationCol: "Site_Code",
		nameCol:     "Item_Description",
		upcCol:      "UPC",
		dateCol:     "Sale_Date",
		priceCol:    "Unit_Price",
		totalCol:    "Final_Total",
	},
}

// NormalizeRow maps one vendor-format row onto the canonical transaction
// shape. Every format column must be present and non-blank; all blank
// columns are reported together in a single error.
func NormalizeRow(source enums.DataSource, row Row) (*Transaction, error) {
	format, ok := rowFormats[source]
	if !ok {
		return nil, fmt.Errorf("unknown data source %q", source)
	}

	var missing error
	for _, col := range format.columns() {
		if strings.TrimSpace(row[col]) == "" {
			missing = multierr.Append(missing, &MissingFieldError{Field: col})
		}
	}
	if missing != nil {
		return nil, missing
	}

	saleDate, err := normalizeDate(row[format.dateCol])
	if err != nil {
		return nil, err
	}

	unitPrice, err := parseAmount(row[format.priceCol])
	if err != nil {
		return nil, err
	}

	totalAmount, err := parseAmount(row[format.totalCol])
	if err != nil {
		return nil, err
	}

	return &Transaction{
		LocationCode: strings.TrimSpace(row[format.locationCol]),
		ProductName:  strings.TrimSpace(row[format.nameCol]),
		ProductUPC:   strings.TrimSpace(row[format.upcCol]),
		SaleDate:     saleDate,
		UnitPrice:    unitPrice,
		TotalAmount:  totalAmount,
		Raw:          row,
	}, nil
}

// NormalizeLocationCode strips the legacy prefix, yielding the canonical
// site code.
func NormalizeLocationCode(code string) string {
	return strings.TrimPrefix(strings.TrimSpace(code), legacyCodePrefix)
}

// normalizeDate canonicalizes a sale date to YYYY-MM-DD. Slash dates are
// read positionally as MM/DD/YYYY; dash dates pass through unchanged.
func normalizeDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	switch {
	case strings.Contains(value, "/"):
		parts := strings.Split(value, "/")
		if len(parts) != 3 {
			return "", &InvalidDateError{Value: raw}
		}
		return fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[0]), pad2(parts[1])), nil
	case strings.Contains(value, "-"):
		return value, nil
	default:
		return "", &InvalidDateError{Value: raw}
	}
}

func pad2(part string) string {
	if len(part) == 1 {
		return "0" + part
	}
	return part
}

// parseAmount strips every character that is not a digit, decimal point,
// or minus sign, then parses the remainder. Unparseable or negative
// results are rejected.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, &InvalidAmountError{Value: raw}
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, &InvalidAmountError{Value: raw}
	}
	return amount, nil
}
