package bidding

import "fmt"

// Reason identifies why a bid was rejected. Values are surfaced verbatim in
// API error details.
type Reason string

const (
	ReasonNotOpen           Reason = "not_open"
	ReasonDepositRequired   Reason = "deposit_required"
	ReasonEntryFeeRequired  Reason = "entry_fee_required"
	ReasonBidTooLow         Reason = "bid_too_low"
	ReasonTierLimitExceeded Reason = "tier_limit_exceeded"
)

// Rejection is the typed validation failure returned by Validate.
type Rejection struct {
	Reason Reason
	// CurrentAmount is the standing price the bid was compared against.
	CurrentAmount int64
	// MinimumBid is the smallest amount that would have been accepted.
	MinimumBid int64
	// MaxBid is the tier ceiling, set for tier rejections.
	MaxBid int64
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("bid rejected: %s", r.Reason)
}

// Rules captures the per-variant bidding policy. Single auctions gate on
// deposit and entry fee and use a strictly-greater price floor; catalog lots
// skip both gates and use an increment floor.
type Rules struct {
	RequireDeposit  bool
	RequireEntryFee bool
	// Increment > 0 switches the floor to current + increment (first bid
	// must meet the starting price). Zero keeps the strictly-greater floor.
	Increment int64
}

// AuctionRules is the policy for standalone single-vehicle auctions.
func AuctionRules() Rules {
	return Rules{RequireDeposit: true, RequireEntryFee: true}
}

// LotRules is the policy for catalog lots with the catalog's bid increment.
func LotRules(increment int64) Rules {
	return Rules{Increment: increment}
}

// BidContext is the state snapshot a bid is evaluated against.
type BidContext struct {
	Open           bool
	DepositBalance int64
	EntryFeePaid   bool
	CurrentBid     int64
	StartingPrice  int64
}

// Validate applies the checks in a fixed order: open, deposit gate, entry
// gate, price floor, tier ceiling. The first failure wins.
func (r Rules) Validate(bc BidContext, amount int64) error {
	if !bc.Open {
		return &Rejection{Reason: ReasonNotOpen}
	}

	tier := TierOf(bc.DepositBalance)
	if r.RequireDeposit && !tier.CanBid() {
		return &Rejection{Reason: ReasonDepositRequired}
	}
	if r.RequireEntryFee && !bc.EntryFeePaid {
		return &Rejection{Reason: ReasonEntryFeeRequired}
	}

	current, minimum := r.floor(bc)
	if amount < minimum {
		return &Rejection{Reason: ReasonBidTooLow, CurrentAmount: current, MinimumBid: minimum}
	}

	if !tier.Allows(amount) {
		return &Rejection{Reason: ReasonTierLimitExceeded, MaxBid: tier.MaxBid}
	}
	return nil
}

// floor returns the standing amount and the minimum acceptable bid.
func (r Rules) floor(bc BidContext) (current, minimum int64) {
	if r.Increment > 0 {
		if bc.CurrentBid > 0 {
			return bc.CurrentBid, bc.CurrentBid + r.Increment
		}
		return 0, bc.StartingPrice
	}
	effective := bc.StartingPrice
	if bc.CurrentBid > 0 {
		effective = bc.CurrentBid
	}
	return effective, effective + 1
}

// MinimumBid exposes the floor for API responses.
func (r Rules) MinimumBid(bc BidContext) int64 {
	_, minimum := r.floor(bc)
	return minimum
}
