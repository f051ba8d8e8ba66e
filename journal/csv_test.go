package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	snapsPath := filepath.Join(dir, "snapshots.csv")

	j, err := NewCSV(tradesPath, snapsPath)
	require.NoError(t, err)
	assert.NoError(t, j.Close())

	tradesHeader := readCSV(t, tradesPath)[0]
	snapsHeader := readCSV(t, snapsPath)[0]

	wantTrades := []string{"run_id", "date", "type", "price_usd", "shares", "amount_krw", "amount_usd", "drawdown", "reason", "portfolio_value_krw", "portfolio_value_usd", "remaining_cash"}
	assert.Equal(t, wantTrades, tradesHeader)

	wantSnaps := []string{"run_id", "date", "value_krw", "stock_value_usd", "price_usd", "drawdown", "total_shares", "cash_krw", "baseline_krw"}
	assert.Equal(t, wantSnaps, snapsHeader)
}

func TestCSVJournalRecordTrade(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(filepath.Join(dir, "trades.csv"), filepath.Join(dir, "snapshots.csv"))
	require.NoError(t, err)

	err = j.RecordTrade(TradeRecord{
		RunID:     "R1",
		Date:      time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		Type:      "BUY",
		PriceUSD:  95,
		Shares:    8.0971659919,
		AmountKRW: 1_000_000,
		AmountUSD: 769.2307692308,
		Drawdown:  5,
		Reason:    "drawdown drop of 5.0% (step 1)",
		ValueKRW:  100_000_000,
		ValueUSD:  769.2307692308,
		CashKRW:   99_000_000,
	})
	assert.NoError(t, err)
	assert.NoError(t, j.Close())

	rows := readCSV(t, filepath.Join(dir, "trades.csv"))
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "R1", row[0])
	assert.Equal(t, "2024-02-02", row[1])
	assert.Equal(t, "BUY", row[2])
	assert.Equal(t, "95.000000", row[3])
	assert.Equal(t, "1000000.000000", row[5])
	assert.Equal(t, "drawdown drop of 5.0% (step 1)", row[8])
}

func TestCSVJournalRecordSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(filepath.Join(dir, "trades.csv"), filepath.Join(dir, "snapshots.csv"))
	require.NoError(t, err)

	err = j.RecordSnapshot(SnapshotRecord{
		RunID:       "R1",
		Date:        time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		ValueKRW:    100_000_000,
		StockUSD:    769.230769,
		PriceUSD:    95,
		Drawdown:    5,
		TotalShares: 8.097166,
		CashKRW:     99_000_000,
		BaselineKRW: 95_000_000,
	})
	assert.NoError(t, err)
	assert.NoError(t, j.Close())

	rows := readCSV(t, filepath.Join(dir, "snapshots.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "100000000.000000", rows[1][2])
	assert.Equal(t, "95000000.000000", rows[1][8])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}
