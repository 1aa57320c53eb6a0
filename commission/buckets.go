/*
buckets.go - Date-window bucketing for live deal counts

PURPOSE:

	The dashboards show "today / this week / this month / this year" deal
	counts computed from a list of sale dates. A deal lands in a window if
	its sale date is on or after the window start and not after today.

WEEK CONVENTION:

	Weeks start on Monday. A Sunday belongs to the week that started six
	days earlier.
*/
package commission

import "time"

// DealCounts holds the four rolling window counts.
type DealCounts struct {
	Daily   int
	Weekly  int
	Monthly int
	Yearly  int
}

// CountByWindow buckets sale dates relative to today. Dates after today
// are ignored; the windows are [start, today] inclusive, date-only.
func CountByWindow(saleDates []time.Time, today time.Time) DealCounts {
	day := DateOnly(today)
	week := StartOfWeek(today)
	month := StartOfMonth(today)
	year := StartOfYear(today)

	var counts DealCounts
	for _, t := range saleDates {
		d := DateOnly(t)
		if d.After(day) {
			continue
		}
		if !d.Before(year) {
			counts.Yearly++
		}
		if !d.Before(month) {
			counts.Monthly++
		}
		if !d.Before(week) {
			counts.Weekly++
		}
		if d.Equal(day) {
			counts.Daily++
		}
	}
	return counts
}

// StartOfWeek returns the Monday of t's week, date-only.
func StartOfWeek(t time.Time) time.Time {
	d := DateOnly(t)
	offset := int(d.Weekday()) - int(time.Monday)
	if d.Weekday() == time.Sunday {
		offset = 6
	}
	return d.AddDate(0, 0, -offset)
}

// StartOfMonth returns the first day of t's month, date-only.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// StartOfYear returns January 1 of t's year, date-only.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}
