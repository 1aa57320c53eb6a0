package commission_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcs/commission-engine/commission"
)

// =============================================================================
// TIER BAND TESTS
// =============================================================================

func TestTierFor_BandBoundaries(t *testing.T) {
	cases := []struct {
		deals int
		rate  string
	}{
		{0, "15"},
		{119, "15"},
		{120, "17.5"},
		{149, "17.5"},
		{150, "22.5"},
		{199, "22.5"},
		{200, "25"},
		{500, "25"},
	}

	for _, tc := range cases {
		got := commission.TierFor(tc.deals)
		assert.True(t, got.Rate.Equal(decimal.RequireFromString(tc.rate)),
			"deals=%d: expected rate %s, got %s", tc.deals, tc.rate, got.Rate)
	}
}

func TestTierFor_RateMonotonicallyIncreasing(t *testing.T) {
	prev := decimal.Zero
	for deals := 0; deals <= 250; deals++ {
		rate := commission.TierFor(deals).Rate
		require.False(t, rate.LessThan(prev), "rate decreased at %d deals", deals)
		prev = rate
	}
}

// =============================================================================
// BONUS TESTS
// =============================================================================

func TestBonusFor_StepFunction(t *testing.T) {
	// Binary at the threshold, never prorated.
	assert.True(t, commission.BonusFor(0).IsZero())
	assert.True(t, commission.BonusFor(69).IsZero())
	assert.True(t, commission.BonusFor(70).Equal(decimal.NewFromInt(1200)))
	assert.True(t, commission.BonusFor(200).Equal(decimal.NewFromInt(1200)))
}

// =============================================================================
// PAYOUT TESTS
// =============================================================================

func TestPayoutFor_RatePlusBonus(t *testing.T) {
	// 80 deals: Starter rate applies, bonus unlocked.
	// 80*15 + 1200 = 2400
	assert.True(t, commission.PayoutFor(80).Equal(decimal.NewFromInt(2400)))

	// 1 deal: 1*15, no bonus.
	assert.True(t, commission.PayoutFor(1).Equal(decimal.NewFromInt(15)))

	// 200 deals: 200*25 + 1200 = 6200
	assert.True(t, commission.PayoutFor(200).Equal(decimal.NewFromInt(6200)))
}

func TestPayoutFor_NeverBelowRateOnly(t *testing.T) {
	for deals := 0; deals <= 250; deals++ {
		rateOnly := commission.TierFor(deals).Rate.Mul(decimal.NewFromInt(int64(deals)))
		assert.False(t, commission.PayoutFor(deals).LessThan(rateOnly),
			"payout below rate-only at %d deals", deals)
	}
}

// =============================================================================
// PROGRESS TESTS
// =============================================================================

func TestProgressToNextTier_MergedMilestoneLadder(t *testing.T) {
	// GIVEN: zero deals
	// THEN: next target is the bonus milestone at 70, zero percent
	p := commission.ProgressToNextTier(0)
	require.NotNil(t, p.NextTarget)
	assert.Equal(t, 70, *p.NextTarget)
	assert.Equal(t, 0.0, p.Percent)

	// GIVEN: bonus reached, tier ladder continues at 120
	p = commission.ProgressToNextTier(70)
	require.NotNil(t, p.NextTarget)
	assert.Equal(t, 120, *p.NextTarget)

	// GIVEN: top of the ladder
	// THEN: no target, pinned at 100
	p = commission.ProgressToNextTier(200)
	assert.Nil(t, p.NextTarget)
	assert.Equal(t, 100.0, p.Percent)
}

func TestProgressToNextTier_PercentCapped(t *testing.T) {
	p := commission.ProgressToNextTier(119)
	require.NotNil(t, p.NextTarget)
	assert.Equal(t, 120, *p.NextTarget)
	assert.InDelta(t, 119.0/120.0*100, p.Percent, 0.0001)
	assert.LessOrEqual(t, p.Percent, 100.0)
}

func TestProgressToBonus_IndependentOfTiers(t *testing.T) {
	assert.InDelta(t, 50.0, commission.ProgressToBonus(35), 0.0001)
	assert.Equal(t, 100.0, commission.ProgressToBonus(70))
	assert.Equal(t, 100.0, commission.ProgressToBonus(300))
}
