/*
tiers.go - Tier, bonus, and payout rate tables

PURPOSE:

	Maps a paid-deal count to a commission tier, a bonus, a projected
	payout, and progress-toward-next-milestone percentages. These are the
	rules agents see on their dashboard.

RATE BANDS (paid deals -> $/deal):

	[0,120)   -> 15.00   Starter
	[120,150) -> 17.50   Rising Tier
	[150,200) -> 22.50   Pro Tier
	[200,inf) -> 25.00   Top Tier

	Bands are contiguous, non-overlapping, and the rate is monotonically
	increasing with the threshold.

MILESTONES:

	The "next milestone" list deliberately mixes the $1200 bonus threshold
	(70) with the tier thresholds (120/150/200). The dashboard renders a
	single progress bar over the merged list, so this package exposes the
	merged view rather than separate bonus/tier progressions.

ALL FUNCTIONS ARE TOTAL:

	Any non-negative count produces a result; there are no error paths.
*/
package commission

import "github.com/shopspring/decimal"

// =============================================================================
// TIERS
// =============================================================================

// Tier is one commission rate band.
type Tier struct {
	Rate  decimal.Decimal // dollars per paid deal
	Label string
	Color string // dashboard accent color
}

var (
	tierStarter = Tier{Rate: decimal.NewFromInt(15), Label: "Starter ($15/deal)", Color: "#a0a0a0"}
	tierRising  = Tier{Rate: decimal.RequireFromString("17.5"), Label: "Rising Tier ($17.50/deal)", Color: "#fd9800"}
	tierPro     = Tier{Rate: decimal.RequireFromString("22.5"), Label: "Pro Tier ($22.50/deal)", Color: "#26a7ff"}
	tierTop     = Tier{Rate: decimal.NewFromInt(25), Label: "Top Tier ($25/deal)", Color: "#13b13b"}
)

// milestones is the merged bonus+tier threshold ladder, ascending.
var milestones = []int{BonusThreshold, 120, 150, 200}

// TierFor returns the rate band for a paid-deal count.
func TierFor(paidDeals int) Tier {
	switch {
	case paidDeals >= 200:
		return tierTop
	case paidDeals >= 150:
		return tierPro
	case paidDeals >= 120:
		return tierRising
	default:
		return tierStarter
	}
}

// BonusFor returns the flat bonus for a paid-deal count. Binary, not
// prorated: the full amount at the threshold, nothing below it.
func BonusFor(paidDeals int) decimal.Decimal {
	if paidDeals >= BonusThreshold {
		return BonusAmount
	}
	return decimal.Zero
}

// PayoutFor returns the projected gross payout: deals at the tier rate
// plus any bonus.
func PayoutFor(paidDeals int) decimal.Decimal {
	return TierFor(paidDeals).Rate.Mul(decimal.NewFromInt(int64(paidDeals))).Add(BonusFor(paidDeals))
}

// =============================================================================
// PROGRESS
// =============================================================================

// TierProgress describes how far an agent is from the next milestone.
// NextTarget is nil once every milestone is reached.
type TierProgress struct {
	NextTarget *int
	Percent    float64 // 0..100, capped
}

// ProgressToNextTier finds the smallest milestone strictly greater than
// paidDeals across the merged bonus+tier ladder.
func ProgressToNextTier(paidDeals int) TierProgress {
	for _, m := range milestones {
		if paidDeals < m {
			target := m
			return TierProgress{
				NextTarget: &target,
				Percent:    capPercent(float64(paidDeals) / float64(m) * 100),
			}
		}
	}
	return TierProgress{NextTarget: nil, Percent: 100}
}

// ProgressToBonus reports progress toward the bonus threshold alone,
// independent of tier progress.
func ProgressToBonus(paidDeals int) float64 {
	return capPercent(float64(paidDeals) / float64(BonusThreshold) * 100)
}

func capPercent(p float64) float64 {
	if p > 100 {
		return 100
	}
	return p
}
