package strategy

import (
	"fmt"
	"math"

	"github.com/minwookim/ladder/market"
)

// Decision is one staged purchase: the ladder step it belongs to, the KRW
// spend, and its USD/share equivalents at the day's price.
type Decision struct {
	Step      int
	AmountKRW market.KRW
	AmountUSD market.USD
	Shares    float64
	Drawdown  float64
	Reason    string
}

// Plan decides the day's purchase, if any. The ladder step is recomputed
// from the current drawdown alone: the planner carries no memory of steps
// already bought, so drawdown oscillating inside one band can re-enter the
// same step on a later day. Sizing grows geometrically per step, is floored
// at MinPurchase, and is clamped to the available cash; when even the
// remaining cash is below MinPurchase the day is skipped.
func Plan(p Params, drawdown float64, cash market.KRW, price market.USD, fx market.FXRate) (Decision, bool) {
	step := int(math.Floor(drawdown / p.DropInterval))
	if step < 1 || step > p.MaxSteps {
		return Decision{}, false
	}

	amount := market.KRW(float64(p.InitialInvestment) * math.Pow(p.Multiplier, float64(step-1)))
	if amount < p.MinPurchase {
		amount = p.MinPurchase
	}
	if amount > cash {
		if cash < p.MinPurchase {
			return Decision{}, false
		}
		amount = cash
	}
	if amount <= 0 {
		return Decision{}, false
	}

	usd := fx.ToUSD(amount)
	return Decision{
		Step:      step,
		AmountKRW: amount,
		AmountUSD: usd,
		Shares:    float64(usd) / float64(price),
		Drawdown:  drawdown,
		Reason:    fmt.Sprintf("drawdown drop of %.1f%% (step %d)", drawdown, step),
	}, true
}
