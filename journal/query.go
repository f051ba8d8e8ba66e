package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns a single run row by ID.
func (j *SQLiteJournal) GetRun(runID string) (Run, error) {
	var r Run

	row := j.db.QueryRow(`
		SELECT run_id, created, symbol, start_date, end_date,
		       initial_cash, exchange_rate, initial_investment, drop_interval,
		       multiplier, sell_recovery, max_steps, min_purchase,
		       final_value, return_pct, purchases, total_invested, remaining_cash, max_drawdown_pct
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID, &r.Created, &r.Symbol, &r.Start, &r.End,
		&r.InitialCash, &r.ExchangeRate, &r.InitialInvestment, &r.DropInterval,
		&r.Multiplier, &r.SellRecovery, &r.MaxSteps, &r.MinPurchase,
		&r.FinalValue, &r.ReturnPct, &r.Purchases, &r.TotalInvested, &r.RemainingCash, &r.MaxDrawdownPct,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns the most recent runs, newest first. ULID run IDs are
// time-sortable, so ordering by run_id orders by creation time.
func (j *SQLiteJournal) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(`
		SELECT run_id, created, symbol, start_date, end_date,
		       initial_cash, exchange_rate, initial_investment, drop_interval,
		       multiplier, sell_recovery, max_steps, min_purchase,
		       final_value, return_pct, purchases, total_invested, remaining_cash, max_drawdown_pct
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Symbol, &r.Start, &r.End,
			&r.InitialCash, &r.ExchangeRate, &r.InitialInvestment, &r.DropInterval,
			&r.Multiplier, &r.SellRecovery, &r.MaxSteps, &r.MinPurchase,
			&r.FinalValue, &r.ReturnPct, &r.Purchases, &r.TotalInvested, &r.RemainingCash, &r.MaxDrawdownPct,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTradesByRun returns a run's trades in date order.
func (j *SQLiteJournal) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, type, price_usd, shares, amount_krw, amount_usd,
		       drawdown, reason, portfolio_value_krw, portfolio_value_usd, remaining_cash
		FROM trades
		WHERE run_id = ?
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(
			&t.RunID, &t.Date, &t.Type, &t.PriceUSD, &t.Shares, &t.AmountKRW, &t.AmountUSD,
			&t.Drawdown, &t.Reason, &t.ValueKRW, &t.ValueUSD, &t.CashKRW,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSnapshotsByRun returns a run's daily portfolio rows in date order.
func (j *SQLiteJournal) ListSnapshotsByRun(runID string) ([]SnapshotRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, value_krw, stock_value_usd, price_usd, drawdown,
		       total_shares, cash_krw, baseline_krw
		FROM snapshots
		WHERE run_id = ?
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRecord
	for rows.Next() {
		var s SnapshotRecord
		if err := rows.Scan(
			&s.RunID, &s.Date, &s.ValueKRW, &s.StockUSD, &s.PriceUSD, &s.Drawdown,
			&s.TotalShares, &s.CashKRW, &s.BaselineKRW,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
