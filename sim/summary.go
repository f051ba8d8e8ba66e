package sim

import "github.com/minwookim/ladder/market"

// Summary condenses a finished run.
type Summary struct {
	InitialCash   market.KRW
	FinalValue    market.KRW
	TotalReturn   float64 // %
	Purchases     int
	TotalInvested market.KRW
	RemainingCash market.KRW
	MaxDrawdown   float64 // %
}

// Summary reports the run outcome. Purchases and TotalInvested count every
// buy, including lots that have since been sold.
func (e *Engine) Summary() Summary {
	s := Summary{
		InitialCash:   e.initialCash,
		RemainingCash: e.ledger.Cash(),
		MaxDrawdown:   e.maxDrawdown,
	}

	if n := len(e.snapshots); n > 0 {
		s.FinalValue = e.snapshots[n-1].ValueKRW
		s.TotalReturn = float64(s.FinalValue-s.InitialCash) / float64(s.InitialCash) * 100
	}

	for _, t := range e.trades {
		if t.Type == Buy {
			s.Purchases++
			s.TotalInvested += t.AmountKRW
		}
	}
	return s
}
