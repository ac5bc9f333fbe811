package enums

import "fmt"

// LotStatus tracks one vehicle's turn within a catalog session.
type LotStatus string

const (
	LotStatusPending LotStatus = "pending"
	LotStatusActive  LotStatus = "active"
	LotStatusSold    LotStatus = "sold"
	LotStatusPassed  LotStatus = "passed"
	LotStatusNoSale  LotStatus = "no_sale"
)

var validLotStatuses = []LotStatus{
	LotStatusPending,
	LotStatusActive,
	LotStatusSold,
	LotStatusPassed,
	LotStatusNoSale,
}

// String implements fmt.Stringer.
func (l LotStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LotStatus.
func (l LotStatus) IsValid() bool {
	for _, candidate := range validLotStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// IsClosed reports whether the lot has reached an outcome.
func (l LotStatus) IsClosed() bool {
	return l == LotStatusSold || l == LotStatusPassed || l == LotStatusNoSale
}

// ParseLotStatus converts raw input into a LotStatus.
func ParseLotStatus(value string) (LotStatus, error) {
	for _, candidate := range validLotStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lot status %q", value)
}

// LotOutcome is the operator-supplied result when closing the active lot.
type LotOutcome string

const (
	LotOutcomeSold   LotOutcome = "sold"
	LotOutcomeNoSale LotOutcome = "no_sale"
)

// IsValid reports whether the value is a known LotOutcome.
func (o LotOutcome) IsValid() bool {
	return o == LotOutcomeSold || o == LotOutcomeNoSale
}

// ParseLotOutcome converts raw input into a LotOutcome.
func ParseLotOutcome(value string) (LotOutcome, error) {
	switch LotOutcome(value) {
	case LotOutcomeSold:
		return LotOutcomeSold, nil
	case LotOutcomeNoSale:
		return LotOutcomeNoSale, nil
	}
	return "", fmt.Errorf("invalid lot outcome %q", value)
}
