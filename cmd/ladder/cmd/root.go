package cmd

import (
	"fmt"

	"github.com/minwookim/ladder/backtest"
	"github.com/minwookim/ladder/config"
	"github.com/minwookim/ladder/data"
	"github.com/minwookim/ladder/journal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ladder",
	Short: "A staged dollar-cost-averaging backtester for leveraged ETFs",
	Long: `Ladder simulates the staged buy-the-dip strategy against historical
daily prices: buy progressively larger amounts as the price falls below
its running maximum, sell each lot once its drawdown has recovered.

It provides tools for:
  - Backtesting a parameter set over a date range
  - Sweeping parameter grids concurrently
  - Downloading daily price history from Yahoo Finance
  - Journaling runs, trades and daily snapshots to SQLite or CSV
  - Serving the backtester as an HTTP API`,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
}

// loadConfig returns the file-backed config when --config is set, the
// defaults otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}

// openJournal builds the journal the config asks for.
func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.SnapshotsFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
}

// buildFeed builds the price feed the config asks for.
func buildFeed(cfg *config.Config) backtest.Feed {
	if cfg.Data.Source == "csv" {
		return backtest.CSVFeed{Path: cfg.Data.Path}
	}
	return data.NewYahooClient(cfg.Data.CacheDir)
}
