package enums

import "fmt"

// DataSource identifies which vendor CSV layout an upload claims to follow.
type DataSource string

const (
	DataSourceVendorA DataSource = "vendor_a"
	DataSourceVendorB DataSource = "vendor_b"
)

var validDataSources = []DataSource{
	DataSourceVendorA,
	DataSourceVendorB,
}

// String implements fmt.Stringer.
func (s DataSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DataSource.
func (s DataSource) IsValid() bool {
	for _, candidate := range validDataSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDataSource converts raw input into a DataSource.
func ParseDataSource(value string) (DataSource, error) {
	for _, candidate := range validDataSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid data source %q", value)
}
