/*
cycle.go - The biweekly commission-cycle calendar

PURPOSE:

	Commission is accounted in fixed 14-day cycles, each with a start date,
	an end date, and a later pay date. The calendar is static reference
	data: the table is fixed at startup (compiled-in default, optionally
	replaced from a JSON config file) and never mutated afterwards.

LOOKUPS:

	Current(today)  -> the cycle whose [start, end] contains today
	Previous(today) -> the cycle immediately before the current one

	Both are pure scans over the ordered table. "today" is always passed
	in explicitly; nothing here reads the wall clock. Comparisons are
	date-only: time-of-day is stripped before containment checks.

MAINTENANCE INVARIANT:

	The table must stay sorted by start date ascending with non-overlapping
	ranges. This is not runtime-checked; NewCalendar trusts its input.
*/
package commission

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNoActiveCycle is returned when today falls outside the configured
// calendar range. Callers treat this as "no data to query", not a fault.
var ErrNoActiveCycle = errors.New("no active commission cycle for date")

// =============================================================================
// CYCLE
// =============================================================================

// Cycle is one 14-day commission accounting period.
type Cycle struct {
	Start time.Time
	End   time.Time
	Pay   time.Time
	Index int // position in the calendar table
}

// Contains reports whether the date falls inside [Start, End], inclusive,
// comparing dates only.
func (c Cycle) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(c.Start) && !d.After(c.End)
}

// DateOnly strips the time-of-day component, normalizing to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// CALENDAR
// =============================================================================

// Calendar is an ordered, immutable table of commission cycles.
type Calendar struct {
	cycles []Cycle
}

// CycleDates is the configuration form of one cycle: three ISO dates.
type CycleDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Pay   string `json:"pay"`
}

// NewCalendar builds a Calendar from configured cycle dates. The input
// must already be sorted by start date ascending.
func NewCalendar(dates []CycleDates) (*Calendar, error) {
	cycles := make([]Cycle, len(dates))
	for i, d := range dates {
		start, err := time.Parse("2006-01-02", d.Start)
		if err != nil {
			return nil, fmt.Errorf("cycle %d: bad start date %q: %w", i, d.Start, err)
		}
		end, err := time.Parse("2006-01-02", d.End)
		if err != nil {
			return nil, fmt.Errorf("cycle %d: bad end date %q: %w", i, d.End, err)
		}
		pay, err := time.Parse("2006-01-02", d.Pay)
		if err != nil {
			return nil, fmt.Errorf("cycle %d: bad pay date %q: %w", i, d.Pay, err)
		}
		cycles[i] = Cycle{Start: start, End: end, Pay: pay, Index: i}
	}
	return &Calendar{cycles: cycles}, nil
}

// ParseCalendar decodes a JSON array of {start,end,pay} objects.
// File reading is the caller's concern.
func ParseCalendar(data []byte) (*Calendar, error) {
	var dates []CycleDates
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, fmt.Errorf("parse cycle calendar: %w", err)
	}
	if len(dates) == 0 {
		return nil, errors.New("parse cycle calendar: empty table")
	}
	return NewCalendar(dates)
}

// Cycles returns a copy of the full table.
func (c *Calendar) Cycles() []Cycle {
	out := make([]Cycle, len(c.cycles))
	copy(out, c.cycles)
	return out
}

// Current returns the cycle containing today, scanning the ordered table.
// Returns ErrNoActiveCycle if today falls in a gap or beyond the table.
func (c *Calendar) Current(today time.Time) (Cycle, error) {
	for _, cy := range c.cycles {
		if cy.Contains(today) {
			return cy, nil
		}
	}
	return Cycle{}, ErrNoActiveCycle
}

// Previous returns the cycle immediately preceding the current one by
// table position. Returns ErrNoActiveCycle if there is no current cycle
// or the current cycle is the first entry.
func (c *Calendar) Previous(today time.Time) (Cycle, error) {
	current, err := c.Current(today)
	if err != nil {
		return Cycle{}, err
	}
	if current.Index == 0 {
		return Cycle{}, ErrNoActiveCycle
	}
	return c.cycles[current.Index-1], nil
}

// =============================================================================
// DEFAULT TABLE
// =============================================================================

// DefaultCalendar returns the compiled-in pay schedule.
func DefaultCalendar() *Calendar {
	cal, err := NewCalendar(defaultCycleDates)
	if err != nil {
		// The table below is static; a parse failure is a programming error.
		panic(err)
	}
	return cal
}

var defaultCycleDates = []CycleDates{
	{Start: "2024-12-14", End: "2024-12-27", Pay: "2025-01-03"},
	{Start: "2024-12-28", End: "2025-01-10", Pay: "2025-01-17"},
	{Start: "2025-01-11", End: "2025-01-24", Pay: "2025-01-31"},
	{Start: "2025-01-25", End: "2025-02-07", Pay: "2025-02-14"},
	{Start: "2025-02-08", End: "2025-02-21", Pay: "2025-02-28"},
	{Start: "2025-02-22", End: "2025-03-07", Pay: "2025-03-14"},
	{Start: "2025-03-08", End: "2025-03-21", Pay: "2025-03-28"},
	{Start: "2025-03-22", End: "2025-04-04", Pay: "2025-04-11"},
	{Start: "2025-04-05", End: "2025-04-18", Pay: "2025-04-25"},
	{Start: "2025-04-19", End: "2025-05-02", Pay: "2025-05-09"},
	{Start: "2025-05-03", End: "2025-05-16", Pay: "2025-05-23"},
	{Start: "2025-05-17", End: "2025-05-30", Pay: "2025-06-06"},
	{Start: "2025-05-31", End: "2025-06-13", Pay: "2025-06-20"},
	{Start: "2025-06-14", End: "2025-06-27", Pay: "2025-07-03"},
	{Start: "2025-06-28", End: "2025-07-11", Pay: "2025-07-18"},
	{Start: "2025-07-12", End: "2025-07-25", Pay: "2025-08-01"},
	{Start: "2025-07-26", End: "2025-08-08", Pay: "2025-08-15"},
	{Start: "2025-08-09", End: "2025-08-22", Pay: "2025-08-29"},
	{Start: "2025-08-23", End: "2025-09-05", Pay: "2025-09-12"},
	{Start: "2025-09-06", End: "2025-09-19", Pay: "2025-09-26"},
	{Start: "2025-09-20", End: "2025-10-03", Pay: "2025-10-10"},
	{Start: "2025-10-04", End: "2025-10-17", Pay: "2025-10-24"},
	{Start: "2025-10-18", End: "2025-10-31", Pay: "2025-11-07"},
	{Start: "2025-11-01", End: "2025-11-14", Pay: "2025-11-21"},
	{Start: "2025-11-15", End: "2025-11-28", Pay: "2025-12-05"},
	{Start: "2025-11-29", End: "2025-12-12", Pay: "2025-12-19"},
	{Start: "2025-12-13", End: "2025-12-26", Pay: "2026-01-02"},
	{Start: "2025-12-27", End: "2026-01-09", Pay: "2026-01-16"},
}
