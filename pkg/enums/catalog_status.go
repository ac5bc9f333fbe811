package enums

import "fmt"

// CatalogStatus tracks the lifecycle of a sequential catalog session.
type CatalogStatus string

const (
	CatalogStatusScheduled CatalogStatus = "scheduled"
	CatalogStatusActive    CatalogStatus = "active"
	CatalogStatusEnded     CatalogStatus = "ended"
)

var validCatalogStatuses = []CatalogStatus{
	CatalogStatusScheduled,
	CatalogStatusActive,
	CatalogStatusEnded,
}

// String implements fmt.Stringer.
func (c CatalogStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CatalogStatus.
func (c CatalogStatus) IsValid() bool {
	for _, candidate := range validCatalogStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCatalogStatus converts raw input into a CatalogStatus.
func ParseCatalogStatus(value string) (CatalogStatus, error) {
	for _, candidate := range validCatalogStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog status %q", value)
}
