package bidding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierOf(t *testing.T) {
	cases := []struct {
		name      string
		deposit   int64
		level     int
		maxBid    int64
		unbounded bool
	}{
		{name: "zero balance", deposit: 0, level: 0, maxBid: 0},
		{name: "just below tier 1", deposit: 9_999, level: 0, maxBid: 0},
		{name: "tier 1 boundary", deposit: 10_000, level: 1, maxBid: 100_000},
		{name: "mid tier 1", deposit: 24_999, level: 1, maxBid: 100_000},
		{name: "tier 2 boundary", deposit: 25_000, level: 2, maxBid: 300_000},
		{name: "mid tier 2", deposit: 49_999, level: 2, maxBid: 300_000},
		{name: "tier 3 boundary", deposit: 50_000, level: 3, unbounded: true},
		{name: "large balance", deposit: 2_000_000, level: 3, unbounded: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tier := TierOf(tc.deposit)
			assert.Equal(t, tc.level, tier.Level)
			assert.Equal(t, tc.maxBid, tier.MaxBid)
			assert.Equal(t, tc.unbounded, tier.Unbounded)
		})
	}
}

func TestTierAllows(t *testing.T) {
	tier1 := TierOf(10_000)
	assert.True(t, tier1.Allows(100_000))
	assert.False(t, tier1.Allows(100_001))

	tier3 := TierOf(50_000)
	assert.True(t, tier3.Allows(10_000_000))

	tier0 := TierOf(500)
	assert.False(t, tier0.CanBid())
	assert.False(t, tier0.Allows(1))
}
