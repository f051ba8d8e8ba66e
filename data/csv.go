// Package data supplies daily price series from local CSV files or the
// Yahoo Finance chart API. The simulation core only ever sees a
// market.Series; everything here is collaborator plumbing.
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/minwookim/ladder/market"
)

// LoadCSV reads daily bars from a CSV file. Two layouts are accepted:
//
//	date,close
//	Date,Open,High,Low,Close,Adj Close,Volume   (Yahoo download format)
//
// For the Yahoo layout the adjusted close is used when present. Rows are
// validated as a series after loading.
func LoadCSV(path string) (market.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readCSV(f)
}

func readCSV(rd io.Reader) (market.Series, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = -1

	dateCol, closeCol := 0, 1
	sawFirst := false

	var s market.Series
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if cols, ok := headerColumns(row); ok {
				dateCol, closeCol = cols[0], cols[1]
				continue
			}
		}
		if len(row) <= closeCol {
			continue
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("bad date %q: %w", row[dateCol], err)
		}
		close, err := strconv.ParseFloat(strings.TrimSpace(row[closeCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad close %q: %w", row[closeCol], err)
		}

		s = append(s, market.Bar{Date: date, Close: market.USD(close)})
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// headerColumns recognizes a header row and returns the date and close
// column indexes, preferring "adj close" over "close".
func headerColumns(row []string) ([2]int, bool) {
	if !strings.EqualFold(strings.TrimSpace(row[0]), "date") {
		return [2]int{}, false
	}

	dateCol, closeCol, adjCol := 0, -1, -1
	for i, name := range row {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "close":
			closeCol = i
		case "adj close", "adjclose", "adj_close":
			adjCol = i
		}
	}
	if adjCol >= 0 {
		closeCol = adjCol
	}
	if closeCol < 0 {
		closeCol = 1
	}
	return [2]int{dateCol, closeCol}, true
}

// WriteCSV saves a series as date,close rows, via a temp file and atomic
// rename so readers never see a half-written file.
func WriteCSV(path string, s market.Series) error {
	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "close"}); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	for _, b := range s {
		if err := w.Write([]string{
			b.Date.Format("2006-01-02"),
			strconv.FormatFloat(float64(b.Close), 'f', -1, 64),
		}); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
