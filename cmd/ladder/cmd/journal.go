package cmd

import (
	"fmt"

	"github.com/minwookim/ladder/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled backtest runs",
	Long: `Query and display backtest runs from the SQLite journal.

Subcommands:
  runs    - List recent runs
  run     - Show one run's parameters and summary
  trades  - List a run's trades

Examples:
  ladder journal runs
  ladder journal run <run-id>
  ladder journal trades <run-id>`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one run's parameters and summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRun,
}

var journalTradesCmd = &cobra.Command{
	Use:   "trades <run-id>",
	Short: "List a run's trades in date order",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrades,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalRunCmd)
	journalCmd.AddCommand(journalTradesCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./ladder.sqlite", "path to SQLite journal DB")
	journalRunsCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "number of runs to list")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns(journalLimit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	fmt.Printf("%-26s %-6s %-10s %-10s %12s %9s\n",
		"run", "symbol", "start", "end", "final KRW", "return")
	for _, r := range runs {
		fmt.Printf("%-26s %-6s %-10s %-10s %12.0f %8.2f%%\n",
			r.RunID, r.Symbol,
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"),
			r.FinalValue, r.ReturnPct)
	}
	return nil
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	r, err := j.GetRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run        %s\n", r.RunID)
	fmt.Printf("Created    %s\n", r.Created.Format("2006-01-02 15:04:05"))
	fmt.Printf("Symbol     %s\n", r.Symbol)
	fmt.Printf("Period     %s .. %s\n",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	fmt.Printf("Params     invest=%.0f drop=%.1f%% mult=%.1f recover=%.1f%% steps=%d\n",
		r.InitialInvestment, r.DropInterval, r.Multiplier, r.SellRecovery, r.MaxSteps)
	fmt.Println()
	fmt.Printf("Initial cash     %15.0f KRW\n", r.InitialCash)
	fmt.Printf("Final value      %15.0f KRW\n", r.FinalValue)
	fmt.Printf("Total return     %14.2f%%\n", r.ReturnPct)
	fmt.Printf("Purchases        %15d\n", r.Purchases)
	fmt.Printf("Total invested   %15.0f KRW\n", r.TotalInvested)
	fmt.Printf("Remaining cash   %15.0f KRW\n", r.RemainingCash)
	fmt.Printf("Max drawdown     %14.2f%%\n", r.MaxDrawdownPct)
	return nil
}

func runJournalTrades(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	trades, err := j.ListTradesByRun(args[0])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Printf("%-10s %-4s %10s %12s %10s  %s\n",
		"date", "type", "price", "amount KRW", "drawdown", "reason")
	for _, t := range trades {
		fmt.Printf("%-10s %-4s %10.2f %12.0f %9.1f%%  %s\n",
			t.Date.Format("2006-01-02"), t.Type, t.PriceUSD, t.AmountKRW, t.Drawdown, t.Reason)
	}
	return nil
}
