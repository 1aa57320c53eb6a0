package report_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcs/commission-engine/commission"
	"github.com/hcs/commission-engine/report"
)

func sampleReport(date string, deals int) report.Report {
	return report.Report{
		UploadDate:   date,
		BatchID:      uuid.New(),
		TotalDeals:   deals,
		AgentPayout:  decimal.NewFromInt(int64(deals * 15)),
		OwnerRevenue: decimal.NewFromInt(int64(deals * 150)),
		OwnerProfit:  decimal.NewFromInt(int64(deals * 43)),
	}
}

func TestMemory_UpsertReplacesByDate(t *testing.T) {
	ctx := context.Background()
	store := report.NewMemory()

	// GIVEN: a report for a date
	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-01", 10), nil))

	// WHEN: a second upload lands on the same date
	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-01", 25), nil))

	// THEN: one report, carrying the second upload's figures
	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 25, all[0].TotalDeals)
}

func TestMemory_AllSortedByDate(t *testing.T) {
	ctx := context.Background()
	store := report.NewMemory()

	// Inserted out of order.
	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-15", 3), nil))
	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-01", 1), nil))
	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-08", 2), nil))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-01", all[0].UploadDate)
	assert.Equal(t, "2025-03-08", all[1].UploadDate)
	assert.Equal(t, "2025-03-15", all[2].UploadDate)
}

func TestMemory_Latest(t *testing.T) {
	ctx := context.Background()
	store := report.NewMemory()

	_, err := store.Latest(ctx)
	assert.ErrorIs(t, err, report.ErrNotFound)

	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-01", 1), nil))
	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-15", 3), nil))
	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-08", 2), nil))

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", latest.UploadDate)
}

func TestMemory_SummariesFollowReplace(t *testing.T) {
	ctx := context.Background()
	store := report.NewMemory()

	first := []commission.AgentSummary{{Agent: "A", PaidDeals: 1}}
	second := []commission.AgentSummary{{Agent: "B", PaidDeals: 2}, {Agent: "C", PaidDeals: 3}}

	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-01", 1), first))
	require.NoError(t, store.Upsert(ctx, sampleReport("2025-03-01", 5), second))

	rows, err := store.Summaries(ctx, "2025-03-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Agent)
	assert.Equal(t, "C", rows[1].Agent)
}

func TestMemory_GetUnknownDate(t *testing.T) {
	ctx := context.Background()
	store := report.NewMemory()

	_, err := store.Get(ctx, "2025-01-01")
	assert.ErrorIs(t, err, report.ErrNotFound)

	_, err = store.Summaries(ctx, "2025-01-01")
	assert.ErrorIs(t, err, report.ErrNotFound)
}
