package backtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/minwookim/ladder/market"
	"github.com/minwookim/ladder/strategy"
)

// Sweep runs one backtest per parameter set concurrently, each with its
// own engine and an in-memory journal so runs cannot interfere. Results
// come back sorted by total return, best first; the SweepResult order is
// deterministic for identical inputs.
type Sweep struct {
	Runner  *Runner
	Workers int // defaults to 4
}

// SweepResult pairs a parameter set with its run outcome. Err is set when
// that particular run failed; the sweep itself only fails on ctx cancel.
type SweepResult struct {
	Params strategy.Params
	Result Result
	Err    error
}

// Run sweeps all parameter sets over the same symbol and range. The series
// is fetched once and shared.
func (s *Sweep) Run(ctx context.Context, symbol string, start, end time.Time,
	initialCash market.KRW, fx market.FXRate, sets []strategy.Params) ([]SweepResult, error) {

	series, err := s.Runner.Feed.Daily(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	workers := s.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(sets) {
		workers = len(sets)
	}

	results := make([]SweepResult, len(sets))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r := Runner{Feed: memoryFeed(series)}
				res, err := r.Run(ctx, symbol, start, end, initialCash, fx, sets[i])
				results[i] = SweepResult{Params: sets[i], Result: res, Err: err}
			}
		}()
	}

	var cancelled error
feed:
	for i := range sets {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}

	// best return first; failed runs sink to the bottom in input order
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Result.Summary.TotalReturn > results[j].Result.Summary.TotalReturn
	})
	return results, nil
}

// memoryFeed serves an already-loaded series to sweep workers.
type memoryFeed market.Series

func (f memoryFeed) Daily(context.Context, string, time.Time, time.Time) (market.Series, error) {
	return market.Series(f), nil
}

// Grid expands value lists into the cross product of parameter sets,
// holding the rest of base fixed.
func Grid(base strategy.Params, dropIntervals, multipliers, recoveries []float64) []strategy.Params {
	if len(dropIntervals) == 0 {
		dropIntervals = []float64{base.DropInterval}
	}
	if len(multipliers) == 0 {
		multipliers = []float64{base.Multiplier}
	}
	if len(recoveries) == 0 {
		recoveries = []float64{base.SellRecovery}
	}

	var sets []strategy.Params
	for _, d := range dropIntervals {
		for _, m := range multipliers {
			for _, r := range recoveries {
				p := base
				p.DropInterval = d
				p.Multiplier = m
				p.SellRecovery = r
				sets = append(sets, p)
			}
		}
	}
	return sets
}
