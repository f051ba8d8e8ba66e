package strategy

import (
	"fmt"

	"github.com/minwookim/ladder/market"
)

// Params configure the drawdown ladder: buy progressively larger lots as
// the price falls further below its running high, sell each lot once the
// drawdown has retraced enough or the lot is in profit.
type Params struct {
	InitialInvestment market.KRW // lot size at step 1
	DropInterval      float64    // drawdown % per ladder step
	Multiplier        float64    // lot growth factor per step
	SellRecovery      float64    // drawdown retrace % that closes a lot
	MaxSteps          int        // deepest ladder step, also the open-lot cap
	MinPurchase       market.KRW // smallest order worth placing
}

// Validate fails fast on out-of-range parameters, naming the offending
// field.
func (p Params) Validate() error {
	if p.InitialInvestment <= 0 {
		return fmt.Errorf("initial_investment must be positive, got %v", p.InitialInvestment)
	}
	if p.DropInterval <= 0 {
		return fmt.Errorf("drop_interval must be positive, got %v", p.DropInterval)
	}
	if p.Multiplier < 1 {
		return fmt.Errorf("multiplier must be >= 1, got %v", p.Multiplier)
	}
	if p.SellRecovery <= 0 {
		return fmt.Errorf("sell_recovery must be positive, got %v", p.SellRecovery)
	}
	if p.MaxSteps < 1 {
		return fmt.Errorf("max_steps must be >= 1, got %d", p.MaxSteps)
	}
	if p.MinPurchase < 0 {
		return fmt.Errorf("min_purchase must be >= 0, got %v", p.MinPurchase)
	}
	return nil
}
