// Package backtest ties the pieces together: it loads a price series,
// drives the simulation engine over it, and records the run in a journal.
package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/minwookim/ladder/config"
	"github.com/minwookim/ladder/data"
	"github.com/minwookim/ladder/journal"
	"github.com/minwookim/ladder/market"
	"github.com/minwookim/ladder/pkg/id"
	"github.com/minwookim/ladder/sim"
	"github.com/minwookim/ladder/strategy"
)

// Feed supplies the daily price series for a symbol and date range.
// Both *data.YahooClient and CSVFeed satisfy it.
type Feed interface {
	Daily(ctx context.Context, symbol string, start, end time.Time) (market.Series, error)
}

// CSVFeed serves a series from a local CSV file, restricted to the
// requested range. The symbol argument is ignored.
type CSVFeed struct {
	Path string
}

func (f CSVFeed) Daily(_ context.Context, _ string, start, end time.Time) (market.Series, error) {
	s, err := data.LoadCSV(f.Path)
	if err != nil {
		return nil, err
	}
	return s.Between(start, end), nil
}

// Result is one completed backtest run.
type Result struct {
	RunID     string
	Symbol    string
	Params    strategy.Params
	Summary   sim.Summary
	Trades    []sim.Trade
	Snapshots []sim.Snapshot
	Start     time.Time
	End       time.Time
}

// Runner executes backtests against a feed, persisting each run to a
// journal. Journal may be nil to keep results in memory only.
type Runner struct {
	Feed    Feed
	Journal journal.Journal
}

// Run backtests one parameter set over [start, end] for symbol.
func (r *Runner) Run(ctx context.Context, symbol string, start, end time.Time,
	initialCash market.KRW, fx market.FXRate, p strategy.Params) (Result, error) {

	if r.Feed == nil {
		return Result{}, fmt.Errorf("backtest: Feed is required")
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	series, err := r.Feed.Daily(ctx, symbol, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("load series for %s: %w", symbol, err)
	}
	if len(series) == 0 {
		return Result{}, fmt.Errorf("no bars for %s between %s and %s",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	runID := id.New()
	engine := sim.NewEngine(runID, initialCash, fx, p, r.Journal)
	if err := engine.Run(series); err != nil {
		return Result{}, err
	}

	res := Result{
		RunID:     runID,
		Symbol:    symbol,
		Params:    p,
		Summary:   engine.Summary(),
		Trades:    engine.Trades(),
		Snapshots: engine.Snapshots(),
		Start:     series[0].Date,
		End:       series[len(series)-1].Date,
	}

	if r.Journal != nil {
		run := journal.Run{
			RunID:             runID,
			Created:           time.Now().UTC(),
			Symbol:            symbol,
			Start:             res.Start,
			End:               res.End,
			InitialCash:       float64(initialCash),
			ExchangeRate:      float64(fx),
			InitialInvestment: float64(p.InitialInvestment),
			DropInterval:      p.DropInterval,
			Multiplier:        p.Multiplier,
			SellRecovery:      p.SellRecovery,
			MaxSteps:          p.MaxSteps,
			MinPurchase:       float64(p.MinPurchase),
			FinalValue:        float64(res.Summary.FinalValue),
			ReturnPct:         res.Summary.TotalReturn,
			Purchases:         res.Summary.Purchases,
			TotalInvested:     float64(res.Summary.TotalInvested),
			RemainingCash:     float64(res.Summary.RemainingCash),
			MaxDrawdownPct:    res.Summary.MaxDrawdown,
		}
		if err := r.Journal.RecordRun(run); err != nil {
			return Result{}, fmt.Errorf("record run: %w", err)
		}
	}

	return res, nil
}

// RunConfig backtests the parameter set and range described by cfg,
// wiring the feed from its data section when the Runner has none.
func (r *Runner) RunConfig(ctx context.Context, cfg *config.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	start, end, err := cfg.Range()
	if err != nil {
		return Result{}, err
	}

	if r.Feed == nil {
		switch cfg.Data.Source {
		case "csv":
			r.Feed = CSVFeed{Path: cfg.Data.Path}
		default:
			r.Feed = data.NewYahooClient(cfg.Data.CacheDir)
		}
	}

	return r.Run(ctx, cfg.Data.Symbol, start, end,
		market.KRW(cfg.Account.InitialCash),
		market.FXRate(cfg.Account.ExchangeRate),
		cfg.Params())
}
