package sim

import (
	"fmt"
	"time"

	"github.com/minwookim/ladder/market"
	"github.com/minwookim/ladder/strategy"
)

// Ledger owns the KRW cash balance and the open lots. Operations are
// sequential and never partially applied; purchases are always capped by
// available cash, so the balance cannot go negative.
type Ledger struct {
	cash   market.KRW
	lots   []Position
	nextID int
}

func NewLedger(cash market.KRW) *Ledger {
	return &Ledger{cash: cash, nextID: 1}
}

func (l *Ledger) Cash() market.KRW { return l.cash }

func (l *Ledger) OpenCount() int { return len(l.lots) }

// Open returns the open lots in entry order. The slice is a copy; the
// ledger's own lots cannot be mutated from outside.
func (l *Ledger) Open() []Position {
	out := make([]Position, len(l.lots))
	copy(out, l.lots)
	return out
}

func (l *Ledger) TotalShares() float64 {
	var n float64
	for _, p := range l.lots {
		n += p.Shares
	}
	return n
}

// ApplyBuy opens a lot from a purchase decision and debits its KRW amount.
func (l *Ledger) ApplyBuy(date time.Time, d strategy.Decision, price market.USD) Position {
	p := Position{
		ID:         l.nextID,
		Date:       date,
		EntryPrice: price,
		Shares:     d.Shares,
		AmountKRW:  d.AmountKRW,
		AmountUSD:  d.AmountUSD,
		Drawdown:   d.Drawdown,
	}
	l.nextID++
	l.lots = append(l.lots, p)
	l.cash -= d.AmountKRW
	return p
}

// ApplySell closes the lot by ID at the given price, crediting the KRW
// proceeds, and returns the removed lot with its USD proceeds.
func (l *Ledger) ApplySell(id int, price market.USD, fx market.FXRate) (Position, market.USD, error) {
	for i, p := range l.lots {
		if p.ID != id {
			continue
		}
		proceeds := market.USD(p.Shares * float64(price))
		l.cash += fx.ToKRW(proceeds)
		l.lots = append(l.lots[:i], l.lots[i+1:]...)
		return p, proceeds, nil
	}
	return Position{}, 0, fmt.Errorf("sell: no open lot %d", id)
}

// Valuation breaks the portfolio value down by currency at the given price.
type Valuation struct {
	CashKRW  market.KRW
	CashUSD  market.USD
	StockKRW market.KRW
	StockUSD market.USD
	TotalKRW market.KRW
	TotalUSD market.USD
}

func (l *Ledger) Valuate(price market.USD, fx market.FXRate) Valuation {
	stockUSD := market.USD(l.TotalShares() * float64(price))
	stockKRW := fx.ToKRW(stockUSD)
	return Valuation{
		CashKRW:  l.cash,
		CashUSD:  fx.ToUSD(l.cash),
		StockKRW: stockKRW,
		StockUSD: stockUSD,
		TotalKRW: l.cash + stockKRW,
		TotalUSD: fx.ToUSD(l.cash) + stockUSD,
	}
}
