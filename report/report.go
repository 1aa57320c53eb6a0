/*
report.go - Report history contract

PURPOSE:

	Defines the interface between ingestion results and persistence. One
	Report exists per upload date; uploading a second statement for the
	same date replaces the first. The ordered history backs the admin
	report list and the "latest report" dashboard card.

UPSERT-BY-DATE CONTRACT:
  - Upsert(): replace-or-append keyed by UploadDate. The ONLY write.
  - At most one Report per date, always.
  - All() stays sorted by UploadDate ascending after every mutation.
  - Reports are never deleted by the system.

IMPLEMENTATIONS:
  - store/sqlite: production embedded store
  - report.Memory: in-memory for testing
*/
package report

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hcs/commission-engine/commission"
)

// ErrNotFound is returned when no Report exists for the requested date.
var ErrNotFound = errors.New("report not found")

// Report is the persisted aggregate of one ingested statement.
// UploadDate is an ISO date string (2006-01-02) and the unique key.
type Report struct {
	UploadDate   string
	BatchID      uuid.UUID // identifies the upload that produced this revision
	TotalDeals   int
	AgentPayout  decimal.Decimal
	OwnerRevenue decimal.Decimal
	OwnerProfit  decimal.Decimal
}

// FromTotals builds a Report for an upload date from statement totals.
func FromTotals(uploadDate string, batchID uuid.UUID, t commission.StatementTotals) Report {
	return Report{
		UploadDate:   uploadDate,
		BatchID:      batchID,
		TotalDeals:   t.Deals,
		AgentPayout:  t.AgentPayout,
		OwnerRevenue: t.OwnerRevenue,
		OwnerProfit:  t.OwnerProfit,
	}
}

// Store persists report history plus the per-agent summaries behind
// each report revision.
type Store interface {
	// Upsert writes the report for its UploadDate, replacing any
	// existing report and summaries for that date.
	Upsert(ctx context.Context, r Report, summaries []commission.AgentSummary) error

	// Latest returns the report with the maximum UploadDate.
	// Returns ErrNotFound when the history is empty.
	Latest(ctx context.Context) (Report, error)

	// Get returns the report for one date, or ErrNotFound.
	Get(ctx context.Context, uploadDate string) (Report, error)

	// All returns the full history ordered by UploadDate ascending.
	All(ctx context.Context) ([]Report, error)

	// Summaries returns the per-agent rows behind one report, in
	// statement order. Returns ErrNotFound if the date has no report.
	Summaries(ctx context.Context, uploadDate string) ([]commission.AgentSummary, error)
}
