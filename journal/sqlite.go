package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, symbol, start_date, end_date,
		 initial_cash, exchange_rate, initial_investment, drop_interval,
		 multiplier, sell_recovery, max_steps, min_purchase,
		 final_value, return_pct, purchases, total_invested, remaining_cash, max_drawdown_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Symbol, r.Start, r.End,
		r.InitialCash, r.ExchangeRate, r.InitialInvestment, r.DropInterval,
		r.Multiplier, r.SellRecovery, r.MaxSteps, r.MinPurchase,
		r.FinalValue, r.ReturnPct, r.Purchases, r.TotalInvested, r.RemainingCash, r.MaxDrawdownPct,
	)
	return err
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, date, type, price_usd, shares, amount_krw, amount_usd,
		 drawdown, reason, portfolio_value_krw, portfolio_value_usd, remaining_cash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Date, t.Type, t.PriceUSD, t.Shares, t.AmountKRW, t.AmountUSD,
		t.Drawdown, t.Reason, t.ValueKRW, t.ValueUSD, t.CashKRW,
	)
	return err
}

func (j *SQLiteJournal) RecordSnapshot(s SnapshotRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO snapshots
		(run_id, date, value_krw, stock_value_usd, price_usd, drawdown,
		 total_shares, cash_krw, baseline_krw)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Date, s.ValueKRW, s.StockUSD, s.PriceUSD, s.Drawdown,
		s.TotalShares, s.CashKRW, s.BaselineKRW,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
