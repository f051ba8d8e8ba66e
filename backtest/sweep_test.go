package backtest

import (
	"context"
	"testing"

	"github.com/minwookim/ladder/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepRanksByReturn(t *testing.T) {
	t.Parallel()

	feed := &staticFeed{series: testSeries(100, 95, 90, 85, 95, 100)}
	s := &Sweep{Runner: &Runner{Feed: feed}, Workers: 3}

	sets := Grid(ladderParams(), []float64{2.5, 5, 10}, nil, []float64{25, 50})
	require.Len(t, sets, 6)

	start, end := testRange()
	results, err := s.Run(context.Background(), "TQQQ", start, end, 100_000_000, 1300, sets)
	require.NoError(t, err)
	require.Len(t, results, 6)

	// the shared series is fetched once, not per run
	assert.Equal(t, 1, feed.calls)

	for i := 1; i < len(results); i++ {
		require.NoError(t, results[i].Err)
		assert.GreaterOrEqual(t,
			results[i-1].Result.Summary.TotalReturn,
			results[i].Result.Summary.TotalReturn)
	}
}

func TestSweepIsDeterministic(t *testing.T) {
	t.Parallel()

	feed := &staticFeed{series: testSeries(100, 95, 90, 85, 80, 90, 100)}
	s := &Sweep{Runner: &Runner{Feed: feed}, Workers: 4}
	sets := Grid(ladderParams(), []float64{3, 5, 8}, []float64{1.5, 2}, nil)

	start, end := testRange()
	first, err := s.Run(context.Background(), "TQQQ", start, end, 50_000_000, 1300, sets)
	require.NoError(t, err)
	second, err := s.Run(context.Background(), "TQQQ", start, end, 50_000_000, 1300, sets)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Params, second[i].Params)
		assert.Equal(t, first[i].Result.Summary, second[i].Result.Summary)
	}
}

func TestSweepBadSetsSinkToBottom(t *testing.T) {
	t.Parallel()

	bad := ladderParams()
	bad.Multiplier = 0

	feed := &staticFeed{series: testSeries(100, 95, 90)}
	s := &Sweep{Runner: &Runner{Feed: feed}}

	start, end := testRange()
	results, err := s.Run(context.Background(), "TQQQ", start, end, 100_000_000, 1300,
		[]strategy.Params{bad, ladderParams()})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
}

func TestSweepCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	feed := &staticFeed{series: testSeries(100, 95)}
	s := &Sweep{Runner: &Runner{Feed: feed}, Workers: 1}

	sets := Grid(ladderParams(), []float64{1, 2, 3, 4, 5, 6, 7, 8}, nil, nil)
	start, end := testRange()
	_, err := s.Run(ctx, "TQQQ", start, end, 100_000_000, 1300, sets)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGridCrossProduct(t *testing.T) {
	t.Parallel()

	sets := Grid(ladderParams(), []float64{5, 10}, []float64{1.5, 2, 3}, []float64{50})
	assert.Len(t, sets, 6)

	// unswept fields stay at the base values
	for _, p := range sets {
		assert.Equal(t, 10, p.MaxSteps)
	}

	// empty lists mean "hold the base value"
	single := Grid(ladderParams(), nil, nil, nil)
	require.Len(t, single, 1)
	assert.Equal(t, ladderParams(), single[0])
}
