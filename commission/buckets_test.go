package commission_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hcs/commission-engine/commission"
)

func TestStartOfWeek_MondayConvention(t *testing.T) {
	// 2025-01-20 is a Monday.
	monday := date("2025-01-20")

	assert.Equal(t, monday, commission.StartOfWeek(date("2025-01-20")))
	assert.Equal(t, monday, commission.StartOfWeek(date("2025-01-22")))
	assert.Equal(t, monday, commission.StartOfWeek(date("2025-01-25")))

	// Sunday belongs to the week that started six days earlier.
	assert.Equal(t, monday, commission.StartOfWeek(date("2025-01-26")))

	// The next Monday opens a new week.
	assert.Equal(t, date("2025-01-27"), commission.StartOfWeek(date("2025-01-27")))
}

func TestCountByWindow(t *testing.T) {
	// GIVEN: today is Wednesday 2025-01-22
	today := date("2025-01-22")

	sales := []time.Time{
		date("2025-01-22"), // today
		date("2025-01-20"), // Monday, this week
		date("2025-01-15"), // last week, this month
		date("2025-01-02"), // this month
		date("2024-12-30"), // last year
		date("2025-01-23"), // tomorrow, ignored
	}

	counts := commission.CountByWindow(sales, today)

	assert.Equal(t, commission.DealCounts{
		Daily:   1,
		Weekly:  2,
		Monthly: 4,
		Yearly:  4,
	}, counts)
}

func TestCountByWindow_SundayToday(t *testing.T) {
	// GIVEN: today is Sunday 2025-01-26; the week began Monday 2025-01-20
	today := date("2025-01-26")

	sales := []time.Time{
		date("2025-01-26"),
		date("2025-01-20"),
		date("2025-01-19"), // previous week's Sunday
	}

	counts := commission.CountByWindow(sales, today)

	assert.Equal(t, 1, counts.Daily)
	assert.Equal(t, 2, counts.Weekly)
	assert.Equal(t, 3, counts.Monthly)
}

func TestCountByWindow_Empty(t *testing.T) {
	counts := commission.CountByWindow(nil, date("2025-01-22"))
	assert.Equal(t, commission.DealCounts{}, counts)
}
