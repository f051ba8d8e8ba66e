package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/minwookim/ladder/backtest"
	"github.com/minwookim/ladder/market"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Backtest a grid of parameter sets concurrently",
	Long: `Sweep runs one backtest per combination of the listed parameter values
and prints them ranked by total return. Values are comma-separated.

Example:
  ladder sweep --drops 2.5,5,10 --mults 1.5,2 --recovers 25,50`,
	RunE: runSweep,
}

var (
	swDrops    string
	swMults    string
	swRecovers string
	swWorkers  int
	swTop      int
)

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVar(&swDrops, "drops", "", "drop intervals to sweep, e.g. 2.5,5,10")
	sweepCmd.Flags().StringVar(&swMults, "mults", "", "multipliers to sweep, e.g. 1.5,2,3")
	sweepCmd.Flags().StringVar(&swRecovers, "recovers", "", "sell recovery thresholds to sweep")
	sweepCmd.Flags().IntVarP(&swWorkers, "workers", "w", 4, "concurrent backtests")
	sweepCmd.Flags().IntVar(&swTop, "top", 10, "number of results to print")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	start, end, err := cfg.Range()
	if err != nil {
		return err
	}

	drops, err := parseFloats(swDrops)
	if err != nil {
		return fmt.Errorf("drops: %w", err)
	}
	mults, err := parseFloats(swMults)
	if err != nil {
		return fmt.Errorf("mults: %w", err)
	}
	recovers, err := parseFloats(swRecovers)
	if err != nil {
		return fmt.Errorf("recovers: %w", err)
	}

	sets := backtest.Grid(cfg.Params(), drops, mults, recovers)
	fmt.Printf("Sweeping %d parameter sets over %s..%s\n\n",
		len(sets), start.Format("2006-01-02"), end.Format("2006-01-02"))

	sweep := backtest.Sweep{
		Runner:  &backtest.Runner{Feed: buildFeed(cfg)},
		Workers: swWorkers,
	}
	results, err := sweep.Run(context.Background(), cfg.Data.Symbol, start, end,
		market.KRW(cfg.Account.InitialCash),
		market.FXRate(cfg.Account.ExchangeRate), sets)
	if err != nil {
		return err
	}

	fmt.Printf("%-6s %-6s %-8s %12s %10s %6s\n",
		"drop", "mult", "recover", "final KRW", "return", "buys")
	for i, r := range results {
		if i >= swTop {
			break
		}
		if r.Err != nil {
			fmt.Printf("%-6.1f %-6.1f %-8.1f failed: %v\n",
				r.Params.DropInterval, r.Params.Multiplier, r.Params.SellRecovery, r.Err)
			continue
		}
		s := r.Result.Summary
		fmt.Printf("%-6.1f %-6.1f %-8.1f %12.0f %9.2f%% %6d\n",
			r.Params.DropInterval, r.Params.Multiplier, r.Params.SellRecovery,
			float64(s.FinalValue), s.TotalReturn, s.Purchases)
	}
	return nil
}

func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}
