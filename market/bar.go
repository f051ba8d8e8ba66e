package market

import (
	"fmt"
	"time"
)

// Bar is one day of price data: the date and the adjusted close.
type Bar struct {
	Date  time.Time
	Close USD
}

// Series is a chronologically ordered run of daily bars.
type Series []Bar

// Validate checks that every close is positive and dates are strictly
// increasing. Irregular trading calendars are fine, gaps are expected.
func (s Series) Validate() error {
	for i, b := range s {
		if b.Close <= 0 {
			return fmt.Errorf("bar %d (%s): close must be positive, got %v",
				i, b.Date.Format("2006-01-02"), b.Close)
		}
		if i > 0 && !s[i-1].Date.Before(b.Date) {
			return fmt.Errorf("bar %d (%s): dates must be strictly increasing",
				i, b.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Between returns the bars with start <= date <= end. A zero start or end
// leaves that side unbounded.
func (s Series) Between(start, end time.Time) Series {
	var out Series
	for _, b := range s {
		if !start.IsZero() && b.Date.Before(start) {
			continue
		}
		if !end.IsZero() && b.Date.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}
