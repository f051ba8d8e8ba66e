package strategy

import (
	"fmt"

	"github.com/minwookim/ladder/market"
)

// Lot is the view of an open position the exit policy needs.
type Lot struct {
	ID            int
	EntryPrice    market.USD
	EntryDrawdown float64 // drawdown % when the lot was opened
}

// Exit marks one lot to close and why.
type Exit struct {
	ID       int
	Recovery float64
	Profit   float64
	Reason   string
}

// EvaluateExits returns the lots to close today. A lot closes when the
// broader drawdown has retraced at least SellRecovery percent of the
// drawdown at entry, or when the lot itself is in profit, whichever comes
// first. Lots opened exactly at a new high have entry drawdown 0; their
// recovery is defined as 0 so they only ever close on profit.
func EvaluateExits(p Params, lots []Lot, drawdown float64, price market.USD) []Exit {
	var out []Exit
	for _, lot := range lots {
		recovery := 0.0
		if lot.EntryDrawdown > 0 {
			recovery = (lot.EntryDrawdown - drawdown) / lot.EntryDrawdown * 100
		}
		profit := float64(price-lot.EntryPrice) / float64(lot.EntryPrice) * 100

		if recovery >= p.SellRecovery || profit > 0 {
			out = append(out, Exit{
				ID:       lot.ID,
				Recovery: recovery,
				Profit:   profit,
				Reason:   fmt.Sprintf("drawdown recovered %.1f%%", recovery),
			})
		}
	}
	return out
}
