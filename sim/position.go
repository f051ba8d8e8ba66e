package sim

import (
	"time"

	"github.com/minwookim/ladder/market"
)

// Position is one open lot of the ladder. Lots are immutable once opened;
// a sale removes the whole lot, there are no partial closes.
type Position struct {
	ID         int
	Date       time.Time
	EntryPrice market.USD
	Shares     float64
	AmountKRW  market.KRW
	AmountUSD  market.USD
	Drawdown   float64 // drawdown % the day the lot was opened
}
