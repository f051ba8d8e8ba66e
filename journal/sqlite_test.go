package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "ladder.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleRun(id string) Run {
	return Run{
		RunID:   id,
		Created: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Symbol:  "TQQQ",
		Start:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),

		InitialCash:       100_000_000,
		ExchangeRate:      1300,
		InitialInvestment: 1_000_000,
		DropInterval:      5,
		Multiplier:        2,
		SellRecovery:      50,
		MaxSteps:          10,
		MinPurchase:       1_000_000,

		FinalValue:     103_500_000,
		ReturnPct:      3.5,
		Purchases:      7,
		TotalInvested:  12_000_000,
		RemainingCash:  95_000_000,
		MaxDrawdownPct: 18.2,
	}
}

func TestSQLiteRunRoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestDB(t)
	want := sampleRun("01RUN")
	require.NoError(t, j.RecordRun(want))

	got, err := j.GetRun("01RUN")
	require.NoError(t, err)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.MaxSteps, got.MaxSteps)
	assert.InDelta(t, want.ReturnPct, got.ReturnPct, 1e-9)
	assert.InDelta(t, want.TotalInvested, got.TotalInvested, 1e-9)

	_, err = j.GetRun("missing")
	assert.Error(t, err)
}

func TestSQLiteListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	j := newTestDB(t)
	require.NoError(t, j.RecordRun(sampleRun("01AAA")))
	require.NoError(t, j.RecordRun(sampleRun("01BBB")))

	runs, err := j.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "01BBB", runs[0].RunID)
	assert.Equal(t, "01AAA", runs[1].RunID)
}

func TestSQLiteTradesAndSnapshotsByRun(t *testing.T) {
	t.Parallel()

	j := newTestDB(t)

	d1 := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordTrade(TradeRecord{RunID: "R1", Date: d2, Type: "SELL", Reason: "drawdown recovered 66.7%"}))
	require.NoError(t, j.RecordTrade(TradeRecord{RunID: "R1", Date: d1, Type: "BUY", Reason: "drawdown drop of 5.0% (step 1)"}))
	require.NoError(t, j.RecordTrade(TradeRecord{RunID: "R2", Date: d1, Type: "BUY"}))

	trades, err := j.ListTradesByRun("R1")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "BUY", trades[0].Type) // date order, not insert order
	assert.Equal(t, "SELL", trades[1].Type)

	require.NoError(t, j.RecordSnapshot(SnapshotRecord{RunID: "R1", Date: d1, ValueKRW: 100}))
	require.NoError(t, j.RecordSnapshot(SnapshotRecord{RunID: "R1", Date: d2, ValueKRW: 101}))

	snaps, err := j.ListSnapshotsByRun("R1")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.InDelta(t, 100, snaps[0].ValueKRW, 1e-9)

	empty, err := j.ListSnapshotsByRun("R9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
