package enums

import "fmt"

// StockStatus is the derived health of one inventory row. It is computed
// from current stock against the minimum threshold and never persisted.
type StockStatus string

const (
	StockStatusOut  StockStatus = "out"
	StockStatusLow  StockStatus = "low"
	StockStatusGood StockStatus = "good"
)

var validStockStatuses = []StockStatus{
	StockStatusOut,
	StockStatusLow,
	StockStatusGood,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}

// StockStatusFor derives the status for a stock level relative to its
// minimum threshold.
func StockStatusFor(current, minimum int) StockStatus {
	switch {
	case current <= 0:
		return StockStatusOut
	case current <= minimum:
		return StockStatusLow
	default:
		return StockStatusGood
	}
}
