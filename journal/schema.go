// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	initial_cash REAL NOT NULL,
	exchange_rate REAL NOT NULL,
	initial_investment REAL NOT NULL,
	drop_interval REAL NOT NULL,
	multiplier REAL NOT NULL,
	sell_recovery REAL NOT NULL,
	max_steps INTEGER NOT NULL,
	min_purchase REAL NOT NULL,
	final_value REAL NOT NULL,
	return_pct REAL NOT NULL,
	purchases INTEGER NOT NULL,
	total_invested REAL NOT NULL,
	remaining_cash REAL NOT NULL,
	max_drawdown_pct REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	type TEXT NOT NULL,
	price_usd REAL NOT NULL,
	shares REAL NOT NULL,
	amount_krw REAL NOT NULL,
	amount_usd REAL NOT NULL,
	drawdown REAL NOT NULL,
	reason TEXT NOT NULL,
	portfolio_value_krw REAL NOT NULL,
	portfolio_value_usd REAL NOT NULL,
	remaining_cash REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	value_krw REAL NOT NULL,
	stock_value_usd REAL NOT NULL,
	price_usd REAL NOT NULL,
	drawdown REAL NOT NULL,
	total_shares REAL NOT NULL,
	cash_krw REAL NOT NULL,
	baseline_krw REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id, date);
CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, date);
`
