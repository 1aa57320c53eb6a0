/*
Package commission is the pure computation core of the commission engine.

PURPOSE:

	Turns raw deal data into tiers, bonuses, payouts, and aggregated
	statement summaries. Everything in this package is side-effect free:
	no clock reads, no I/O, no shared mutable state. Dates are always
	passed in explicitly so every computation is reproducible in tests.

KEY CONCEPTS IN THIS FILE (types.go):
  - DealRecord: one canonical row of an ingested payroll statement
  - AgentSummary: per-agent aggregate for one statement
  - StatementTotals: statement-wide aggregate
  - Paid status: a deal is Paid iff its advance amount is strictly positive

DESIGN PRINCIPLES:
 1. Precision: dollar amounts use decimal.Decimal, never float64
 2. Determinism: agent grouping preserves first-seen order
 3. Explicit time: nothing in this package calls time.Now()

SEE ALSO:
  - tiers.go: tier/bonus/payout rate tables
  - cycle.go: the biweekly commission-cycle calendar
  - aggregate.go: statement aggregation
*/
package commission

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// RATE CONSTANTS
// =============================================================================

// Dollar figures fixed by the pay plan.
var (
	// BonusAmount is the flat bonus unlocked at BonusThreshold paid deals.
	BonusAmount = decimal.NewFromInt(1200)

	// OwnerRevenuePerDeal is what the agency bills per paid deal.
	OwnerRevenuePerDeal = decimal.NewFromInt(150)

	// OwnerProfitPerDeal is the agency's margin per paid deal. Distinct from
	// the bonus threshold constant below even though both read "70-ish".
	OwnerProfitPerDeal = decimal.NewFromInt(43)
)

// BonusThreshold is the paid-deal count that unlocks BonusAmount.
const BonusThreshold = 70

// =============================================================================
// PAID STATUS
// =============================================================================

type PaidStatus string

const (
	StatusPaid    PaidStatus = "Paid"
	StatusNotPaid PaidStatus = "Not Paid"
)

// StatusFor derives the paid status from an advance amount.
// A deal counts as paid iff the carrier advanced money for it.
func StatusFor(advance decimal.Decimal) PaidStatus {
	if advance.IsPositive() {
		return StatusPaid
	}
	return StatusNotPaid
}

// =============================================================================
// DEAL RECORD - Canonical post-normalization row
// =============================================================================

// DealRecord is one row of a payroll statement after header normalization.
// Only rows with a non-empty Agent, FirstName, and LastName survive
// filtering into this model.
type DealRecord struct {
	Agent                 string
	FirstName             string
	LastName              string
	Advance               decimal.Decimal
	AdvanceExcludedReason string
	EffectiveDate         string // raw statement value, may be empty
	PaidStatus            PaidStatus
}

// Usable reports whether the row carries enough identity to be aggregated.
// Subtotal and footer rows in real statements fail this check.
func (r DealRecord) Usable() bool {
	return r.Agent != "" && r.FirstName != "" && r.LastName != ""
}

// =============================================================================
// AGGREGATES
// =============================================================================

// AgentSummary is the per-agent leaderboard row for one statement.
type AgentSummary struct {
	Agent       string
	PaidDeals   int
	AgentPayout decimal.Decimal
	OwnerProfit decimal.Decimal
	NetPaid     decimal.Decimal // sum of advances across ALL rows, paid or not
}

// StatementTotals folds every AgentSummary of a statement into one record.
type StatementTotals struct {
	Deals        int
	AgentPayout  decimal.Decimal
	OwnerRevenue decimal.Decimal
	OwnerProfit  decimal.Decimal
}

// ZeroTotals returns totals with explicit zero decimals so JSON and SQL
// encodings are stable even for empty statements.
func ZeroTotals() StatementTotals {
	return StatementTotals{
		AgentPayout:  decimal.Zero,
		OwnerRevenue: decimal.Zero,
		OwnerProfit:  decimal.Zero,
	}
}
