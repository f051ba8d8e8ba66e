package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/minwookim/ladder/data"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download daily price history to a CSV file",
	Long: `Fetch downloads daily closes from Yahoo Finance and saves them as a
date,close CSV usable with 'backtest --csv'.

Example:
  ladder fetch -s TQQQ --start 2024-01-01 -o tqqq.csv`,
	RunE: runFetch,
}

var (
	fetchSymbol string
	fetchStart  string
	fetchEnd    string
	fetchOut    string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchSymbol, "symbol", "s", "TQQQ", "ticker symbol")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "start date YYYY-MM-DD (required)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "end date YYYY-MM-DD (default today)")
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "output CSV path (required)")

	fetchCmd.MarkFlagRequired("start")
	fetchCmd.MarkFlagRequired("out")
}

func runFetch(cmd *cobra.Command, args []string) error {
	start, err := time.Parse("2006-01-02", fetchStart)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if fetchEnd != "" {
		end, err = time.Parse("2006-01-02", fetchEnd)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
	}

	client := data.NewYahooClient("")
	series, err := client.Daily(context.Background(), fetchSymbol, start, end)
	if err != nil {
		return err
	}

	if err := data.WriteCSV(fetchOut, series); err != nil {
		return err
	}
	fmt.Printf("Wrote %d bars for %s to %s\n", len(series), fetchSymbol, fetchOut)
	return nil
}
