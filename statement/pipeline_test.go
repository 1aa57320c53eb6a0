package statement_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hcs/commission-engine/statement"
)

// buildWorkbook writes an xlsx with a header row and data rows.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

// =============================================================================
// FULL PIPELINE
// =============================================================================

func TestProcess_Workbook(t *testing.T) {
	// GIVEN: a statement with a paid deal, a zero-advance deal, and a
	// footer row with no agent
	buf := buildWorkbook(t, [][]interface{}{
		{"Agent", "first_name", "last_name", "Advance"},
		{"A", "Jane", "Doe", 100},
		{"A", "John", "Roe", 0},
		{"", "Sub", "Total", 5},
	})

	// WHEN
	result, err := statement.Process(buf, "statement.xlsx")

	// THEN: the footer row is filtered, one agent, one paid deal
	require.NoError(t, err)
	require.Len(t, result.Summary, 1)

	s := result.Summary[0]
	assert.Equal(t, "A", s.Agent)
	assert.Equal(t, 1, s.PaidDeals)
	assert.True(t, s.AgentPayout.Equal(decimal.NewFromInt(15)))
	assert.True(t, s.OwnerProfit.Equal(decimal.NewFromInt(43)))
	assert.True(t, s.NetPaid.Equal(decimal.NewFromInt(100)))

	assert.Equal(t, 1, result.Totals.Deals)
	assert.True(t, result.Totals.AgentPayout.Equal(decimal.NewFromInt(15)))
	assert.True(t, result.Totals.OwnerRevenue.Equal(decimal.NewFromInt(150)))
	assert.True(t, result.Totals.OwnerProfit.Equal(decimal.NewFromInt(43)))
}

func TestProcess_CSV(t *testing.T) {
	csvSrc := strings.NewReader(
		"Agent,first_name,last_name,Advance\n" +
			"B,Amy,Lee,250\n" +
			"B,Ben,Kim,0\n")

	result, err := statement.Process(csvSrc, "statement.csv")
	require.NoError(t, err)
	require.Len(t, result.Summary, 1)
	assert.Equal(t, 1, result.Summary[0].PaidDeals)
	assert.True(t, result.Summary[0].NetPaid.Equal(decimal.NewFromInt(250)))
}

func TestProcess_UnreadableSource(t *testing.T) {
	_, err := statement.Process(strings.NewReader("not a workbook"), "statement.xlsx")
	assert.ErrorIs(t, err, statement.ErrSourceUnreadable)

	_, err = statement.Process(strings.NewReader("x"), "statement.pdf")
	assert.ErrorIs(t, err, statement.ErrSourceUnreadable)

	// Legacy binary workbooks are outside the accepted set.
	_, err = statement.Process(strings.NewReader("x"), "statement.xls")
	assert.ErrorIs(t, err, statement.ErrSourceUnreadable)
}

// =============================================================================
// ROW-STAGE SEMANTICS
// =============================================================================

func TestProcessRows_Empty(t *testing.T) {
	_, err := statement.ProcessRows(nil)
	assert.ErrorIs(t, err, statement.ErrEmptyStatement)
}

func TestProcessRows_AllFiltered(t *testing.T) {
	// Rows exist but none carries agent identity. Distinct error from
	// the empty case.
	rows := []statement.Row{
		{"Advance": "100"},
		{"Agent": "A", "first_name": "Jane"}, // missing last name
	}

	_, err := statement.ProcessRows(rows)
	assert.ErrorIs(t, err, statement.ErrNoUsableRows)
}

func TestProcessRows_HeaderAliases(t *testing.T) {
	// Alternate spellings of every field resolve to the same record.
	rows := []statement.Row{
		{
			"agent":          "C",
			"First Name":     "Ada",
			"Last Name":      "Ng",
			"advance":        "$1,250.50",
			"Reason":         "chargeback",
			"Effective_Date": "2025-03-01",
		},
	}

	result, err := statement.ProcessRows(rows)
	require.NoError(t, err)
	require.Len(t, result.Summary, 1)
	assert.Equal(t, "C", result.Summary[0].Agent)
	assert.True(t, result.Summary[0].NetPaid.Equal(decimal.RequireFromString("1250.50")))
}

func TestProcessRows_BadAmountDegradesToZero(t *testing.T) {
	rows := []statement.Row{
		{"Agent": "D", "first_name": "Eve", "last_name": "Ott", "Advance": "N/A"},
	}

	result, err := statement.ProcessRows(rows)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Summary[0].PaidDeals)
	assert.True(t, result.Summary[0].NetPaid.IsZero())
}

func TestProcessRows_TwoAgentSpellingsStayDistinct(t *testing.T) {
	rows := []statement.Row{
		{"Agent": "dana", "first_name": "A", "last_name": "B", "Advance": "10"},
		{"Agent": "Dana", "first_name": "A", "last_name": "B", "Advance": "10"},
	}

	result, err := statement.ProcessRows(rows)
	require.NoError(t, err)
	assert.Len(t, result.Summary, 2)
}
