package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateExitsRecovery(t *testing.T) {
	t.Parallel()

	p := ladderParams() // SellRecovery = 50

	lots := []Lot{
		{ID: 1, EntryPrice: 95, EntryDrawdown: 5},
		{ID: 2, EntryPrice: 90, EntryDrawdown: 10},
		{ID: 3, EntryPrice: 85, EntryDrawdown: 15},
	}

	// price back to 95, drawdown back to 5%
	exits := EvaluateExits(p, lots, 5, 95)
	require.Len(t, exits, 2)

	// lot 2: recovery (10-5)/10 = 50% and in profit
	assert.Equal(t, 2, exits[0].ID)
	assert.InDelta(t, 50, exits[0].Recovery, 1e-9)

	// lot 3: recovery (15-5)/15 = 66.7%
	assert.Equal(t, 3, exits[1].ID)
	assert.InDelta(t, 100.0/1.5, exits[1].Recovery, 1e-9)
	assert.Equal(t, "drawdown recovered 66.7%", exits[1].Reason)

	// lot 1: recovery 0, profit 0 -> stays open
}

func TestEvaluateExitsProfit(t *testing.T) {
	t.Parallel()

	p := ladderParams()
	lots := []Lot{{ID: 7, EntryPrice: 80, EntryDrawdown: 20}}

	// drawdown barely moved but the lot is already profitable
	exits := EvaluateExits(p, lots, 19, 81)
	require.Len(t, exits, 1)
	assert.Equal(t, 7, exits[0].ID)
	assert.InDelta(t, 1.25, exits[0].Profit, 1e-9)
}

func TestEvaluateExitsDegenerateEntry(t *testing.T) {
	t.Parallel()

	p := ladderParams()
	// opened exactly at a new high: entry drawdown 0, recovery stays 0
	lots := []Lot{{ID: 1, EntryPrice: 100, EntryDrawdown: 0}}

	assert.Empty(t, EvaluateExits(p, lots, 0, 100))
	assert.Empty(t, EvaluateExits(p, lots, 3, 97))

	exits := EvaluateExits(p, lots, 0, 101)
	require.Len(t, exits, 1)
	assert.Equal(t, 0.0, exits[0].Recovery)
	assert.Greater(t, exits[0].Profit, 0.0)
}

func TestEvaluateExitsNoLots(t *testing.T) {
	t.Parallel()

	assert.Empty(t, EvaluateExits(ladderParams(), nil, 12, 88))
}
