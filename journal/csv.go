package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSVJournal writes trades and snapshots to two CSV files in the export
// format of the original trade-history spreadsheet. Run metadata has no
// natural home in flat files and is dropped; use the SQLite journal when
// runs need to be queried later.
type CSVJournal struct {
	trades    *csv.Writer
	snapshots *csv.Writer
	tf, sf    *os.File
}

func NewCSV(tradesPath, snapshotsPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(snapshotsPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	if err := tw.Write([]string{"run_id", "date", "type", "price_usd", "shares", "amount_krw", "amount_usd", "drawdown", "reason", "portfolio_value_krw", "portfolio_value_usd", "remaining_cash"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"run_id", "date", "value_krw", "stock_value_usd", "price_usd", "drawdown", "total_shares", "cash_krw", "baseline_krw"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, sw, tf, sf}, nil
}

func (j *CSVJournal) RecordRun(Run) error { return nil }

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.RunID,
		t.Date.Format("2006-01-02"),
		t.Type,
		f(t.PriceUSD),
		f(t.Shares),
		f(t.AmountKRW),
		f(t.AmountUSD),
		f(t.Drawdown),
		t.Reason,
		f(t.ValueKRW),
		f(t.ValueUSD),
		f(t.CashKRW),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordSnapshot(s SnapshotRecord) error {
	err := j.snapshots.Write([]string{
		s.RunID,
		s.Date.Format("2006-01-02"),
		f(s.ValueKRW),
		f(s.StockUSD),
		f(s.PriceUSD),
		f(s.Drawdown),
		f(s.TotalShares),
		f(s.CashKRW),
		f(s.BaselineKRW),
	})
	if err != nil {
		return err
	}
	j.snapshots.Flush()
	return j.snapshots.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.snapshots.Flush()
	if err := j.snapshots.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
