package sqlite_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcs/commission-engine/commission"
	"github.com/hcs/commission-engine/report"
	"github.com/hcs/commission-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testReport(date string, deals int) report.Report {
	return report.Report{
		UploadDate:   date,
		BatchID:      uuid.New(),
		TotalDeals:   deals,
		AgentPayout:  decimal.NewFromInt(int64(deals * 15)),
		OwnerRevenue: decimal.NewFromInt(int64(deals * 150)),
		OwnerProfit:  decimal.NewFromInt(int64(deals * 43)),
	}
}

func TestUpsert_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	summaries := []commission.AgentSummary{
		{Agent: "A", PaidDeals: 2, AgentPayout: decimal.NewFromInt(30),
			OwnerProfit: decimal.NewFromInt(86), NetPaid: decimal.RequireFromString("312.45")},
		{Agent: "B", PaidDeals: 1, AgentPayout: decimal.NewFromInt(15),
			OwnerProfit: decimal.NewFromInt(43), NetPaid: decimal.NewFromInt(100)},
	}
	in := testReport("2025-03-01", 3)

	require.NoError(t, store.Upsert(ctx, in, summaries))

	got, err := store.Get(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, in.BatchID, got.BatchID)
	assert.Equal(t, 3, got.TotalDeals)
	assert.True(t, got.AgentPayout.Equal(in.AgentPayout))
	assert.True(t, got.OwnerRevenue.Equal(in.OwnerRevenue))
	assert.True(t, got.OwnerProfit.Equal(in.OwnerProfit))

	rows, err := store.Summaries(ctx, "2025-03-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Agent)
	assert.True(t, rows[0].NetPaid.Equal(decimal.RequireFromString("312.45")))
	assert.Equal(t, "B", rows[1].Agent)
}

func TestUpsert_ReplacesReportAndSummaries(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := []commission.AgentSummary{{Agent: "Old", PaidDeals: 1,
		AgentPayout: decimal.NewFromInt(15), OwnerProfit: decimal.NewFromInt(43), NetPaid: decimal.NewFromInt(50)}}
	require.NoError(t, store.Upsert(ctx, testReport("2025-03-01", 1), first))

	// Re-upload for the same date with different agents.
	second := []commission.AgentSummary{
		{Agent: "New1", PaidDeals: 2, AgentPayout: decimal.NewFromInt(30), OwnerProfit: decimal.NewFromInt(86), NetPaid: decimal.NewFromInt(200)},
		{Agent: "New2", PaidDeals: 3, AgentPayout: decimal.NewFromInt(45), OwnerProfit: decimal.NewFromInt(129), NetPaid: decimal.NewFromInt(300)},
	}
	require.NoError(t, store.Upsert(ctx, testReport("2025-03-01", 5), second))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].TotalDeals)

	rows, err := store.Summaries(ctx, "2025-03-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "New1", rows[0].Agent)
	assert.Equal(t, "New2", rows[1].Agent)
}

func TestAll_OrderedByDate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Upsert(ctx, testReport("2025-03-15", 3), nil))
	require.NoError(t, store.Upsert(ctx, testReport("2025-03-01", 1), nil))
	require.NoError(t, store.Upsert(ctx, testReport("2025-03-08", 2), nil))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-01", all[0].UploadDate)
	assert.Equal(t, "2025-03-08", all[1].UploadDate)
	assert.Equal(t, "2025-03-15", all[2].UploadDate)
}

func TestLatest(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Latest(ctx)
	assert.ErrorIs(t, err, report.ErrNotFound)

	require.NoError(t, store.Upsert(ctx, testReport("2025-03-01", 1), nil))
	require.NoError(t, store.Upsert(ctx, testReport("2025-04-01", 2), nil))

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", latest.UploadDate)
}

func TestGet_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Get(ctx, "2025-01-01")
	assert.ErrorIs(t, err, report.ErrNotFound)

	_, err = store.Summaries(ctx, "2025-01-01")
	assert.ErrorIs(t, err, report.ErrNotFound)
}

func TestSummaries_EmptyButReportExists(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Upsert(ctx, testReport("2025-03-01", 0), nil))

	rows, err := store.Summaries(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
