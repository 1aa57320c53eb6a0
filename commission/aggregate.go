/*
aggregate.go - Per-agent statement aggregation

PURPOSE:

	Groups canonical deal records by agent and computes one AgentSummary
	per agent plus statement-wide totals. This is the terminal stage of
	statement ingestion; the rate tables in tiers.go supply the math.

GROUPING:

	The grouping key is the raw agent string: case-sensitive, untrimmed.
	Two spellings of the same agent produce two summary rows. This exact-
	match behavior is deliberate (strict audit matching against the FMO
	statement) and is preserved as documented behavior.

ORDERING:

	Agents appear in the summary in first-seen statement order, which
	keeps output deterministic without imposing a sort the source data
	never had.
*/
package commission

import "github.com/shopspring/decimal"

// Summarize aggregates usable deal records into per-agent summaries and
// statement totals. Records must already be filtered; unusable rows are
// the ingestion pipeline's concern.
func Summarize(records []DealRecord) ([]AgentSummary, StatementTotals) {
	groups := make(map[string][]DealRecord)
	var order []string

	for _, r := range records {
		if _, seen := groups[r.Agent]; !seen {
			order = append(order, r.Agent)
		}
		groups[r.Agent] = append(groups[r.Agent], r)
	}

	totals := ZeroTotals()
	summaries := make([]AgentSummary, 0, len(order))

	for _, agent := range order {
		rows := groups[agent]

		paidDeals := 0
		netPaid := decimal.Zero
		for _, r := range rows {
			if r.PaidStatus == StatusPaid {
				paidDeals++
			}
			netPaid = netPaid.Add(r.Advance)
		}

		deals := decimal.NewFromInt(int64(paidDeals))
		payout := PayoutFor(paidDeals)
		ownerRev := OwnerRevenuePerDeal.Mul(deals)
		ownerProf := OwnerProfitPerDeal.Mul(deals)

		summaries = append(summaries, AgentSummary{
			Agent:       agent,
			PaidDeals:   paidDeals,
			AgentPayout: payout,
			OwnerProfit: ownerProf,
			NetPaid:     netPaid,
		})

		totals.Deals += paidDeals
		totals.AgentPayout = totals.AgentPayout.Add(payout)
		totals.OwnerRevenue = totals.OwnerRevenue.Add(ownerRev)
		totals.OwnerProfit = totals.OwnerProfit.Add(ownerProf)
	}

	return summaries, totals
}
