package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteReport prints a human-readable run report.
func WriteReport(w io.Writer, r Result) {
	fmt.Fprintf(w, "Run        %s\n", r.RunID)
	fmt.Fprintf(w, "Symbol     %s\n", r.Symbol)
	fmt.Fprintf(w, "Period     %s .. %s\n",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	fmt.Fprintf(w, "Params     invest=%.0f drop=%.1f%% mult=%.1f recover=%.1f%% steps=%d\n",
		float64(r.Params.InitialInvestment), r.Params.DropInterval,
		r.Params.Multiplier, r.Params.SellRecovery, r.Params.MaxSteps)
	fmt.Fprintln(w)

	s := r.Summary
	fmt.Fprintf(w, "Initial cash     %15.0f KRW\n", float64(s.InitialCash))
	fmt.Fprintf(w, "Final value      %15.0f KRW\n", float64(s.FinalValue))
	fmt.Fprintf(w, "Total return     %14.2f%%\n", s.TotalReturn)
	fmt.Fprintf(w, "Purchases        %15d\n", s.Purchases)
	fmt.Fprintf(w, "Total invested   %15.0f KRW\n", float64(s.TotalInvested))
	fmt.Fprintf(w, "Remaining cash   %15.0f KRW\n", float64(s.RemainingCash))
	fmt.Fprintf(w, "Max drawdown     %14.2f%%\n", s.MaxDrawdown)
	fmt.Fprintf(w, "Trades           %15d\n", len(r.Trades))
}

// WriteTradesCSV exports the run's trades as CSV.
func WriteTradesCSV(w io.Writer, r Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"date", "type", "price_usd", "shares", "amount_krw", "drawdown", "reason",
	}); err != nil {
		return err
	}
	for _, tr := range r.Trades {
		if err := cw.Write([]string{
			tr.Date.Format("2006-01-02"),
			string(tr.Type),
			strconv.FormatFloat(float64(tr.PriceUSD), 'f', 6, 64),
			strconv.FormatFloat(tr.Shares, 'f', 6, 64),
			strconv.FormatFloat(float64(tr.AmountKRW), 'f', 6, 64),
			strconv.FormatFloat(tr.Drawdown, 'f', 6, 64),
			tr.Reason,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
