package sim

import (
	"errors"
	"fmt"

	"github.com/minwookim/ladder/journal"
	"github.com/minwookim/ladder/market"
	"github.com/minwookim/ladder/strategy"
)

// ErrEmptySeries is returned when there are no bars to simulate. The engine
// produces no state at all in that case.
var ErrEmptySeries = errors.New("price series is empty")

// Engine replays the drawdown ladder over a daily series. Each day it
// updates the drawdown tracker, closes every lot the exit policy names,
// makes at most one purchase, and records a snapshot. Engines are
// single-use and single-threaded; parameter sweeps run one engine per
// parameter set.
type Engine struct {
	runID       string
	params      strategy.Params
	fx          market.FXRate
	initialCash market.KRW

	tracker strategy.DrawdownTracker
	ledger  *Ledger
	journal journal.Journal

	trades    []Trade
	snapshots []Snapshot

	baselineShares float64
	maxDrawdown    float64
	done           bool
}

func NewEngine(runID string, initialCash market.KRW, fx market.FXRate, params strategy.Params, j journal.Journal) *Engine {
	if j == nil {
		j = &journal.Memory{}
	}
	return &Engine{
		runID:       runID,
		params:      params,
		fx:          fx,
		initialCash: initialCash,
		ledger:      NewLedger(initialCash),
		journal:     j,
	}
}

// Run simulates the full series. It is a pure function of the input and the
// engine's parameters: identical inputs produce identical trade and
// snapshot histories.
func (e *Engine) Run(series market.Series) error {
	if e.done {
		return errors.New("engine already ran")
	}
	if len(series) == 0 {
		return ErrEmptySeries
	}
	if err := series.Validate(); err != nil {
		return fmt.Errorf("invalid price series: %w", err)
	}
	e.done = true

	e.baselineShares = float64(e.fx.ToUSD(e.initialCash)) / float64(series[0].Close)

	for _, bar := range series {
		dd := e.tracker.Update(bar.Close)
		if dd > e.maxDrawdown {
			e.maxDrawdown = dd
		}

		if err := e.applyExits(bar, dd); err != nil {
			return err
		}
		if err := e.applyPurchase(bar, dd); err != nil {
			return err
		}
		if err := e.snapshot(bar, dd); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) applyExits(bar market.Bar, dd float64) error {
	open := e.ledger.Open()
	lots := make([]strategy.Lot, len(open))
	for i, p := range open {
		lots[i] = strategy.Lot{ID: p.ID, EntryPrice: p.EntryPrice, EntryDrawdown: p.Drawdown}
	}

	for _, x := range strategy.EvaluateExits(e.params, lots, dd, bar.Close) {
		pos, proceeds, err := e.ledger.ApplySell(x.ID, bar.Close, e.fx)
		if err != nil {
			return err
		}

		v := e.ledger.Valuate(bar.Close, e.fx)
		t := Trade{
			Date:      bar.Date,
			Type:      Sell,
			PriceUSD:  bar.Close,
			Shares:    pos.Shares,
			AmountKRW: e.fx.ToKRW(proceeds),
			AmountUSD: proceeds,
			Drawdown:  pos.Drawdown,
			Reason:    x.Reason,
			ValueKRW:  v.TotalKRW,
			ValueUSD:  v.StockUSD,
			CashKRW:   v.CashKRW,
		}
		e.trades = append(e.trades, t)
		if err := e.journal.RecordTrade(e.tradeRecord(t)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) applyPurchase(bar market.Bar, dd float64) error {
	// The planner is memory-less; the open-lot cap is what keeps the
	// ladder from stacking more lots than it has steps.
	if e.ledger.OpenCount() >= e.params.MaxSteps {
		return nil
	}

	d, ok := strategy.Plan(e.params, dd, e.ledger.Cash(), bar.Close, e.fx)
	if !ok {
		return nil
	}

	e.ledger.ApplyBuy(bar.Date, d, bar.Close)

	v := e.ledger.Valuate(bar.Close, e.fx)
	t := Trade{
		Date:      bar.Date,
		Type:      Buy,
		PriceUSD:  bar.Close,
		Shares:    d.Shares,
		AmountKRW: d.AmountKRW,
		AmountUSD: d.AmountUSD,
		Drawdown:  d.Drawdown,
		Reason:    d.Reason,
		ValueKRW:  v.TotalKRW,
		ValueUSD:  v.StockUSD,
		CashKRW:   v.CashKRW,
	}
	e.trades = append(e.trades, t)
	return e.journal.RecordTrade(e.tradeRecord(t))
}

func (e *Engine) snapshot(bar market.Bar, dd float64) error {
	v := e.ledger.Valuate(bar.Close, e.fx)
	baseline := e.fx.ToKRW(market.USD(e.baselineShares * float64(bar.Close)))

	s := Snapshot{
		Date:        bar.Date,
		ValueKRW:    v.TotalKRW,
		StockUSD:    v.StockUSD,
		Price:       bar.Close,
		Drawdown:    dd,
		TotalShares: e.ledger.TotalShares(),
		CashKRW:     v.CashKRW,
		BaselineKRW: baseline,
	}
	e.snapshots = append(e.snapshots, s)

	return e.journal.RecordSnapshot(journal.SnapshotRecord{
		RunID:       e.runID,
		Date:        s.Date,
		ValueKRW:    float64(s.ValueKRW),
		StockUSD:    float64(s.StockUSD),
		PriceUSD:    float64(s.Price),
		Drawdown:    s.Drawdown,
		TotalShares: s.TotalShares,
		CashKRW:     float64(s.CashKRW),
		BaselineKRW: float64(s.BaselineKRW),
	})
}

func (e *Engine) tradeRecord(t Trade) journal.TradeRecord {
	return journal.TradeRecord{
		RunID:     e.runID,
		Date:      t.Date,
		Type:      string(t.Type),
		PriceUSD:  float64(t.PriceUSD),
		Shares:    t.Shares,
		AmountKRW: float64(t.AmountKRW),
		AmountUSD: float64(t.AmountUSD),
		Drawdown:  t.Drawdown,
		Reason:    t.Reason,
		ValueKRW:  float64(t.ValueKRW),
		ValueUSD:  float64(t.ValueUSD),
		CashKRW:   float64(t.CashKRW),
	}
}

// Trades returns the trade history in execution order.
func (e *Engine) Trades() []Trade { return e.trades }

// Snapshots returns one row per simulated day.
func (e *Engine) Snapshots() []Snapshot { return e.snapshots }

// Open returns the lots still open after the last day. There is no forced
// liquidation; they are simply unrealized in the final snapshot.
func (e *Engine) Open() []Position { return e.ledger.Open() }
