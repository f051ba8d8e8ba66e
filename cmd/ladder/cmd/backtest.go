package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/minwookim/ladder/backtest"
	"github.com/minwookim/ladder/config"
	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run one backtest over a date range",
	Long: `Backtest replays the buy-the-dip ladder over historical daily closes
and prints a summary report. Flags override the config file.

Example:
  ladder backtest --symbol TQQQ --start 2024-02-01 --cash 100000000`,
	RunE: runBacktest,
}

var (
	btSymbol   string
	btCSVPath  string
	btStart    string
	btEnd      string
	btCash     float64
	btFX       float64
	btInvest   float64
	btDrop     float64
	btMult     float64
	btRecover  float64
	btSteps    int
	btMinBuy   float64
	btTradeOut string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btSymbol, "symbol", "s", "", "ticker symbol (default from config)")
	backtestCmd.Flags().StringVar(&btCSVPath, "csv", "", "load prices from a CSV file instead of Yahoo")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "start date YYYY-MM-DD")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "end date YYYY-MM-DD (default today)")
	backtestCmd.Flags().Float64VarP(&btCash, "cash", "c", 0, "initial cash in KRW")
	backtestCmd.Flags().Float64Var(&btFX, "fx", 0, "exchange rate, KRW per USD")
	backtestCmd.Flags().Float64VarP(&btInvest, "invest", "i", 0, "first-step purchase amount in KRW")
	backtestCmd.Flags().Float64Var(&btDrop, "drop", 0, "drawdown interval per step, percent")
	backtestCmd.Flags().Float64VarP(&btMult, "mult", "m", 0, "purchase multiplier per step")
	backtestCmd.Flags().Float64Var(&btRecover, "recover", 0, "sell recovery threshold, percent")
	backtestCmd.Flags().IntVar(&btSteps, "steps", 0, "maximum concurrently open lots")
	backtestCmd.Flags().Float64Var(&btMinBuy, "min-purchase", 0, "minimum purchase amount in KRW")
	backtestCmd.Flags().StringVar(&btTradeOut, "export-trades", "", "write the trade log to this CSV file")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyBacktestFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	runner := backtest.Runner{Feed: buildFeed(cfg), Journal: j}
	res, err := runner.RunConfig(context.Background(), cfg)
	if err != nil {
		return err
	}

	backtest.WriteReport(os.Stdout, res)

	if btTradeOut != "" {
		f, err := os.Create(btTradeOut)
		if err != nil {
			return fmt.Errorf("export trades: %w", err)
		}
		defer f.Close()
		if err := backtest.WriteTradesCSV(f, res); err != nil {
			return fmt.Errorf("export trades: %w", err)
		}
		fmt.Printf("\nTrades written to %s\n", btTradeOut)
	}
	return nil
}

func applyBacktestFlags(cfg *config.Config) {
	if btSymbol != "" {
		cfg.Data.Symbol = btSymbol
	}
	if btCSVPath != "" {
		cfg.Data.Source = "csv"
		cfg.Data.Path = btCSVPath
	}
	if btStart != "" {
		cfg.Data.StartDate = btStart
	}
	if btEnd != "" {
		cfg.Data.EndDate = btEnd
	}
	if btCash > 0 {
		cfg.Account.InitialCash = btCash
	}
	if btFX > 0 {
		cfg.Account.ExchangeRate = btFX
	}
	if btInvest > 0 {
		cfg.Strategy.InitialInvestment = btInvest
	}
	if btDrop > 0 {
		cfg.Strategy.DropInterval = btDrop
	}
	if btMult > 0 {
		cfg.Strategy.Multiplier = btMult
	}
	if btRecover > 0 {
		cfg.Strategy.SellRecovery = btRecover
	}
	if btSteps > 0 {
		cfg.Strategy.MaxSteps = btSteps
	}
	if btMinBuy > 0 {
		cfg.Strategy.MinPurchase = btMinBuy
	}
}
