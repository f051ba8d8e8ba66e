package strategy

import "github.com/minwookim/ladder/market"

// DrawdownTracker keeps the running maximum price seen so far and derives
// the percentage decline from it. A new all-time high resets the decline
// to zero, which restarts the ladder.
type DrawdownTracker struct {
	max     market.USD
	started bool
}

// Update folds in the day's price and returns the current drawdown in
// percent. The first price seeds the running max; prices must be positive.
func (d *DrawdownTracker) Update(price market.USD) float64 {
	if !d.started || price > d.max {
		d.max = price
		d.started = true
		return 0
	}
	return float64(d.max-price) / float64(d.max) * 100
}

// Max returns the running maximum, zero before the first Update.
func (d *DrawdownTracker) Max() market.USD { return d.max }
