package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/minwookim/ladder/market"
	"github.com/minwookim/ladder/strategy"
	"gopkg.in/yaml.v3"
)

// Config is the complete backtest configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Data     DataConfig     `json:"data" yaml:"data"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// AccountConfig holds the bankroll and the fixed currency conversion.
type AccountConfig struct {
	InitialCash  float64 `json:"initial_cash" yaml:"initial_cash"`   // KRW
	ExchangeRate float64 `json:"exchange_rate" yaml:"exchange_rate"` // KRW per USD
}

// StrategyConfig holds the ladder parameters.
type StrategyConfig struct {
	InitialInvestment float64 `json:"initial_investment" yaml:"initial_investment"` // KRW
	DropInterval      float64 `json:"drop_interval" yaml:"drop_interval"`           // %
	Multiplier        float64 `json:"multiplier" yaml:"multiplier"`
	SellRecovery      float64 `json:"sell_recovery" yaml:"sell_recovery"` // %
	MaxSteps          int     `json:"max_steps" yaml:"max_steps"`
	MinPurchase       float64 `json:"min_purchase" yaml:"min_purchase"` // KRW
}

// DataConfig selects the price series: a local CSV file or the Yahoo
// chart API.
type DataConfig struct {
	Symbol    string `json:"symbol" yaml:"symbol"`
	Source    string `json:"source" yaml:"source"` // "csv" or "yahoo"
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	CacheDir  string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date,omitempty" yaml:"end_date,omitempty"` // empty = today
}

// JournalConfig selects where trades and snapshots are recorded.
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SnapshotsFile string `json:"snapshots_file,omitempty" yaml:"snapshots_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the config as YAML or JSON based on the extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks every field, naming the first offender.
func (c *Config) Validate() error {
	if c.Account.InitialCash <= 0 {
		return fmt.Errorf("account.initial_cash must be positive")
	}
	if c.Account.ExchangeRate <= 0 {
		return fmt.Errorf("account.exchange_rate must be positive")
	}

	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	switch c.Data.Source {
	case "csv":
		if c.Data.Path == "" {
			return fmt.Errorf("data.path required for CSV source")
		}
	case "yahoo":
		if c.Data.Symbol == "" {
			return fmt.Errorf("data.symbol required for Yahoo source")
		}
	default:
		return fmt.Errorf("data.source must be 'csv' or 'yahoo'")
	}

	if _, _, err := c.Range(); err != nil {
		return err
	}

	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.SnapshotsFile == "" {
			return fmt.Errorf("journal trades_file and snapshots_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}

	return nil
}

// Params returns the strategy parameters in their domain types.
func (c *Config) Params() strategy.Params {
	return strategy.Params{
		InitialInvestment: market.KRW(c.Strategy.InitialInvestment),
		DropInterval:      c.Strategy.DropInterval,
		Multiplier:        c.Strategy.Multiplier,
		SellRecovery:      c.Strategy.SellRecovery,
		MaxSteps:          c.Strategy.MaxSteps,
		MinPurchase:       market.KRW(c.Strategy.MinPurchase),
	}
}

// Range parses the configured date range. An empty end date means today.
func (c *Config) Range() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.Data.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("data.start_date: %w", err)
	}

	if c.Data.EndDate == "" {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	} else {
		end, err = time.Parse("2006-01-02", c.Data.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("data.end_date: %w", err)
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("data.end_date is before data.start_date")
	}
	return start, end, nil
}

// Default returns a configuration with the strategy's customary defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			InitialCash:  100_000_000,
			ExchangeRate: 1300,
		},
		Strategy: StrategyConfig{
			InitialInvestment: 1_000_000,
			DropInterval:      5,
			Multiplier:        2,
			SellRecovery:      50,
			MaxSteps:          10,
			MinPurchase:       1_000_000,
		},
		Data: DataConfig{
			Symbol:    "TQQQ",
			Source:    "yahoo",
			CacheDir:  "./data-cache",
			StartDate: "2024-02-01",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./ladder.sqlite",
		},
	}
}
