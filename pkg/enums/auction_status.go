package enums

import "fmt"

// AuctionStatus tracks the lifecycle of a single-vehicle auction.
type AuctionStatus string

const (
	AuctionStatusDraft     AuctionStatus = "draft"
	AuctionStatusActive    AuctionStatus = "active"
	AuctionStatusEnded     AuctionStatus = "ended"
	AuctionStatusSettled   AuctionStatus = "settled"
	AuctionStatusCancelled AuctionStatus = "cancelled"
)

var validAuctionStatuses = []AuctionStatus{
	AuctionStatusDraft,
	AuctionStatusActive,
	AuctionStatusEnded,
	AuctionStatusSettled,
	AuctionStatusCancelled,
}

// String implements fmt.Stringer.
func (a AuctionStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AuctionStatus.
func (a AuctionStatus) IsValid() bool {
	for _, candidate := range validAuctionStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (a AuctionStatus) IsTerminal() bool {
	return a == AuctionStatusEnded || a == AuctionStatusSettled || a == AuctionStatusCancelled
}

// NonTerminalAuctionStatuses lists the statuses that block a vehicle from
// being listed again.
func NonTerminalAuctionStatuses() []AuctionStatus {
	return []AuctionStatus{AuctionStatusDraft, AuctionStatusActive}
}

// ParseAuctionStatus converts raw input into an AuctionStatus.
func ParseAuctionStatus(value string) (AuctionStatus, error) {
	for _, candidate := range validAuctionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid auction status %q", value)
}
