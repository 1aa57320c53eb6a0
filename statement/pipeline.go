/*
pipeline.go - The four-stage statement ingestion pipeline

PURPOSE:

	Parse -> Normalize -> Filter -> Aggregate, fully synchronous. The
	caller hands in an uploaded statement; the pipeline hands back the
	per-agent leaderboard and statement totals, or a single terminal
	error. No partial results: a failed ingestion writes nothing.

FAILURE SEMANTICS:

	Row-level problems degrade that row to defaults and the batch goes on.
	Pipeline-level problems (unreadable source, empty input, nothing left
	after filtering) abort the whole operation with a sentinel error the
	API layer maps to a user-facing message.
*/
package statement

import (
	"errors"
	"io"

	"github.com/hcs/commission-engine/commission"
)

var (
	// ErrEmptyStatement means the source decoded fine but held zero data
	// rows before filtering. Distinct from ErrNoUsableRows so the user
	// can tell "empty file" from "file full of garbage rows".
	ErrEmptyStatement = errors.New("statement contains no rows")

	// ErrNoUsableRows means rows existed but every one lacked agent or
	// lead name fields and was filtered out.
	ErrNoUsableRows = errors.New("statement contains no usable rows")
)

// Result is the full output of one successful ingestion.
type Result struct {
	Summary []commission.AgentSummary
	Totals  commission.StatementTotals
}

// Process runs the full pipeline over an uploaded statement.
func Process(r io.Reader, filename string) (Result, error) {
	rows, err := ParseSource(r, filename)
	if err != nil {
		return Result{}, err
	}
	return ProcessRows(rows)
}

// ProcessRows runs the normalize/filter/aggregate stages over already
// decoded rows. Split out so tests and alternate decoders can feed rows
// directly.
func ProcessRows(rows []Row) (Result, error) {
	if len(rows) == 0 {
		return Result{}, ErrEmptyStatement
	}

	records := Normalize(rows)

	usable := records[:0]
	for _, rec := range records {
		if rec.Usable() {
			usable = append(usable, rec)
		}
	}
	if len(usable) == 0 {
		return Result{}, ErrNoUsableRows
	}

	summary, totals := commission.Summarize(usable)
	return Result{Summary: summary, Totals: totals}, nil
}
