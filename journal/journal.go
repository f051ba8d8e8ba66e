package journal

import "time"

// TradeRecord is one journaled buy or sell, with the portfolio state that
// resulted from it.
type TradeRecord struct {
	RunID    string
	Date     time.Time
	Type     string // BUY or SELL
	PriceUSD float64
	Shares   float64

	AmountKRW float64
	AmountUSD float64

	Drawdown float64 // % at entry for the lot this trade touched
	Reason   string

	ValueKRW float64 // portfolio value after the trade
	ValueUSD float64 // stock value in USD after the trade
	CashKRW  float64 // remaining cash after the trade
}

// SnapshotRecord is one end-of-day portfolio row.
type SnapshotRecord struct {
	RunID       string
	Date        time.Time
	ValueKRW    float64 // cash + stock
	StockUSD    float64 // stock value only
	PriceUSD    float64
	Drawdown    float64
	TotalShares float64
	CashKRW     float64
	BaselineKRW float64 // buy-and-hold comparison value
}

// Run mirrors the runs table: the full parameter set plus the result
// summary, so any run can be reproduced from its row.
type Run struct {
	RunID   string
	Created time.Time
	Symbol  string
	Start   time.Time
	End     time.Time

	InitialCash       float64
	ExchangeRate      float64
	InitialInvestment float64
	DropInterval      float64
	Multiplier        float64
	SellRecovery      float64
	MaxSteps          int
	MinPurchase       float64

	FinalValue     float64
	ReturnPct      float64
	Purchases      int
	TotalInvested  float64
	RemainingCash  float64
	MaxDrawdownPct float64
}

type Journal interface {
	RecordRun(Run) error
	RecordTrade(TradeRecord) error
	RecordSnapshot(SnapshotRecord) error
	Close() error
}
