/*
normalize.go - Header aliasing and type coercion

PURPOSE:

	Second stage of statement ingestion: maps a raw Row to a canonical
	DealRecord. Payroll statements arrive from the FMO with drifting
	header spellings, so each canonical field accepts a fixed alias list,
	first non-empty match wins. Unrecognized headers are ignored.

COERCION:

	Advance amounts tolerate currency formatting ("$1,234.50"). A cell
	that still fails to parse degrades to zero rather than failing the
	row; a bad cell never aborts a batch.
*/
package statement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hcs/commission-engine/commission"
)

// Accepted header spellings per canonical field, in priority order.
var (
	aliasAgent     = []string{"Agent", "agent"}
	aliasFirstName = []string{"first_name", "First Name"}
	aliasLastName  = []string{"last_name", "Last Name"}
	aliasAdvance   = []string{"Advance", "advance"}
	aliasReason    = []string{"Advance Excluded Reason", "Reason"}
	aliasEffDate   = []string{"Eff Date", "Effective_Date"}
)

// Normalize maps raw rows to canonical deal records. Every input row
// produces a record; rows with missing identity fields come out
// non-Usable and are dropped by the filter stage, not here.
func Normalize(rows []Row) []commission.DealRecord {
	records := make([]commission.DealRecord, 0, len(rows))
	for _, row := range rows {
		advance := parseAmount(pick(row, aliasAdvance))
		records = append(records, commission.DealRecord{
			Agent:                 pick(row, aliasAgent),
			FirstName:             pick(row, aliasFirstName),
			LastName:              pick(row, aliasLastName),
			Advance:               advance,
			AdvanceExcludedReason: pick(row, aliasReason),
			EffectiveDate:         pick(row, aliasEffDate),
			PaidStatus:            commission.StatusFor(advance),
		})
	}
	return records
}

// pick returns the first non-empty value among the field's aliases.
func pick(row Row, aliases []string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(row[a]); v != "" {
			return v
		}
	}
	return ""
}

// parseAmount coerces a statement cell to a decimal dollar amount.
// Currency symbols and thousands separators are stripped first.
func parseAmount(cell string) decimal.Decimal {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(cell)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
