package sim

import (
	"testing"
	"time"

	"github.com/minwookim/ladder/market"
	"github.com/minwookim/ladder/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerBuySellCycle(t *testing.T) {
	t.Parallel()

	l := NewLedger(10_000_000)
	fx := market.FXRate(1300)
	date := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	d, ok := strategy.Plan(ladderParams(), 5, l.Cash(), 95, fx)
	require.True(t, ok)

	pos := l.ApplyBuy(date, d, 95)
	assert.Equal(t, 1, pos.ID)
	assert.Equal(t, market.KRW(9_000_000), l.Cash())
	assert.Equal(t, 1, l.OpenCount())
	assert.InDelta(t, d.Shares, l.TotalShares(), 1e-12)

	sold, proceeds, err := l.ApplySell(pos.ID, 100, fx)
	require.NoError(t, err)
	assert.Equal(t, pos.ID, sold.ID)
	assert.InDelta(t, d.Shares*100, float64(proceeds), 1e-9)
	assert.Zero(t, l.OpenCount())

	// bought at 95, sold at 100: cash grew by the 100/95 ratio on the lot
	wantCash := 9_000_000 + 1_000_000*100.0/95.0
	assert.InDelta(t, wantCash, float64(l.Cash()), 1e-6)
}

func TestLedgerSellUnknownLot(t *testing.T) {
	t.Parallel()

	l := NewLedger(1_000_000)
	_, _, err := l.ApplySell(42, 100, 1300)
	assert.Error(t, err)
}

func TestLedgerValuate(t *testing.T) {
	t.Parallel()

	l := NewLedger(13_000_000)
	fx := market.FXRate(1300)
	date := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	d, ok := strategy.Plan(ladderParams(), 10, l.Cash(), 90, fx)
	require.True(t, ok)
	l.ApplyBuy(date, d, 90)

	v := l.Valuate(90, fx)
	assert.InDelta(t, float64(v.CashKRW)+float64(v.StockKRW), float64(v.TotalKRW), 1e-9)
	assert.InDelta(t, float64(v.TotalKRW)/1300, float64(v.TotalUSD), 1e-6)
	// buying converts cash to stock at the same valuation
	assert.InDelta(t, 13_000_000, float64(v.TotalKRW), 1e-6)

	// price moves, stock leg revalues
	v = l.Valuate(99, fx)
	assert.InDelta(t, 11_000_000+2_000_000*99.0/90.0, float64(v.TotalKRW), 1e-6)
}

func TestLedgerOpenIsACopy(t *testing.T) {
	t.Parallel()

	l := NewLedger(10_000_000)
	d, _ := strategy.Plan(ladderParams(), 5, l.Cash(), 95, 1300)
	l.ApplyBuy(time.Now(), d, 95)

	open := l.Open()
	open[0].Shares = 0
	assert.NotZero(t, l.TotalShares())
}
