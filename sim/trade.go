package sim

import (
	"time"

	"github.com/minwookim/ladder/market"
)

type TradeType string

const (
	Buy  TradeType = "BUY"
	Sell TradeType = "SELL"
)

// Trade is one executed buy or sell, stamped with the portfolio state that
// resulted from it. The trade history is append-only.
type Trade struct {
	Date     time.Time
	Type     TradeType
	PriceUSD market.USD
	Shares   float64

	AmountKRW market.KRW
	AmountUSD market.USD

	// Drawdown is the entry drawdown of the lot this trade touched: the
	// day's drawdown for a buy, the bought-at drawdown for a sell.
	Drawdown float64
	Reason   string

	ValueKRW market.KRW // portfolio value after the trade
	ValueUSD market.USD // stock value in USD after the trade
	CashKRW  market.KRW // remaining cash after the trade
}

// Snapshot is the end-of-day portfolio state, one per simulated day.
type Snapshot struct {
	Date        time.Time
	ValueKRW    market.KRW // cash + stock
	StockUSD    market.USD // stock value only
	Price       market.USD
	Drawdown    float64
	TotalShares float64
	CashKRW     market.KRW
	BaselineKRW market.KRW // buy-and-hold of the initial cash
}
