package bidding

// Tier is the deposit-derived bidding level. It is computed from the user's
// deposit balance on every evaluation and never persisted.
type Tier struct {
	Level     int
	MaxBid    int64
	Unbounded bool
}

// Deposit thresholds in whole currency units.
const (
	tier1Deposit = 10_000
	tier2Deposit = 25_000
	tier3Deposit = 50_000

	tier1MaxBid = 100_000
	tier2MaxBid = 300_000
)

// TierOf maps a deposit balance to its bidding tier.
func TierOf(depositBalance int64) Tier {
	switch {
	case depositBalance >= tier3Deposit:
		return Tier{Level: 3, Unbounded: true}
	case depositBalance >= tier2Deposit:
		return Tier{Level: 2, MaxBid: tier2MaxBid}
	case depositBalance >= tier1Deposit:
		return Tier{Level: 1, MaxBid: tier1MaxBid}
	default:
		return Tier{Level: 0, MaxBid: 0}
	}
}

// Allows reports whether a bid amount fits under the tier ceiling.
func (t Tier) Allows(amount int64) bool {
	if t.Unbounded {
		return true
	}
	return amount <= t.MaxBid
}

// CanBid reports whether the tier permits bidding at all.
func (t Tier) CanBid() bool {
	return t.Level > 0
}
