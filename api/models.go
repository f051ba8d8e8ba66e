package api

import (
	"github.com/minwookim/ladder/journal"
	"github.com/minwookim/ladder/sim"
)

// BacktestRequest is the POST /api/v1/backtest body. Field names follow
// the web client's camelCase convention. Everything except the bankroll
// and start date has a default.
type BacktestRequest struct {
	Symbol    string `json:"symbol,omitempty"`
	StartDate string `json:"startDate" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"endDate,omitempty"`            // default: today

	InitialCash  float64 `json:"initialCash" binding:"required"` // KRW
	ExchangeRate float64 `json:"exchangeRate,omitempty"`         // KRW per USD

	InitialInvestment float64 `json:"initialInvestment,omitempty"` // KRW
	DropInterval      float64 `json:"dropInterval,omitempty"`      // %
	Multiplier        float64 `json:"multiplier,omitempty"`
	SellRecovery      float64 `json:"sellRecovery,omitempty"` // %
	MaxSteps          int     `json:"maxSteps,omitempty"`
	MinPurchase       float64 `json:"minPurchase,omitempty"` // KRW

	IncludeTrades    bool `json:"includeTrades,omitempty"`
	IncludeSnapshots bool `json:"includeSnapshots,omitempty"`
}

// BacktestResponse is the completed run.
type BacktestResponse struct {
	RunID     string            `json:"runId"`
	Symbol    string            `json:"symbol"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Summary   SummaryPayload    `json:"summary"`
	Trades    []TradePayload    `json:"trades,omitempty"`
	Snapshots []SnapshotPayload `json:"snapshots,omitempty"`
}

type SummaryPayload struct {
	InitialCash   float64 `json:"initialCash"`
	FinalValue    float64 `json:"finalValue"`
	TotalReturn   float64 `json:"totalReturn"` // %
	Purchases     int     `json:"purchases"`
	TotalInvested float64 `json:"totalInvested"`
	RemainingCash float64 `json:"remainingCash"`
	MaxDrawdown   float64 `json:"maxDrawdown"` // %
}

type TradePayload struct {
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	Shares    float64 `json:"shares"`
	AmountKRW float64 `json:"amountKrw"`
	AmountUSD float64 `json:"amountUsd"`
	Drawdown  float64 `json:"drawdown"`
	Reason    string  `json:"reason"`
	ValueKRW  float64 `json:"valueKrw"`
	CashKRW   float64 `json:"cashKrw"`
}

type SnapshotPayload struct {
	Date        string  `json:"date"`
	ValueKRW    float64 `json:"valueKrw"`
	StockUSD    float64 `json:"stockValueUsd"`
	Price       float64 `json:"price"`
	Drawdown    float64 `json:"drawdown"`
	TotalShares float64 `json:"totalShares"`
	CashKRW     float64 `json:"cashKrw"`
	BaselineKRW float64 `json:"baselineKrw"`
}

// RunPayload is one journaled run row for the runs endpoints.
type RunPayload struct {
	RunID       string  `json:"runId"`
	Created     string  `json:"created"`
	Symbol      string  `json:"symbol"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	FinalValue  float64 `json:"finalValue"`
	TotalReturn float64 `json:"totalReturn"`
	Purchases   int     `json:"purchases"`
	MaxDrawdown float64 `json:"maxDrawdown"`
}

// ErrorResponse is the error envelope every failure uses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func summaryPayload(s sim.Summary) SummaryPayload {
	return SummaryPayload{
		InitialCash:   float64(s.InitialCash),
		FinalValue:    float64(s.FinalValue),
		TotalReturn:   s.TotalReturn,
		Purchases:     s.Purchases,
		TotalInvested: float64(s.TotalInvested),
		RemainingCash: float64(s.RemainingCash),
		MaxDrawdown:   s.MaxDrawdown,
	}
}

func tradePayloads(trades []sim.Trade) []TradePayload {
	out := make([]TradePayload, len(trades))
	for i, t := range trades {
		out[i] = TradePayload{
			Date:      t.Date.Format("2006-01-02"),
			Type:      string(t.Type),
			Price:     float64(t.PriceUSD),
			Shares:    t.Shares,
			AmountKRW: float64(t.AmountKRW),
			AmountUSD: float64(t.AmountUSD),
			Drawdown:  t.Drawdown,
			Reason:    t.Reason,
			ValueKRW:  float64(t.ValueKRW),
			CashKRW:   float64(t.CashKRW),
		}
	}
	return out
}

func snapshotPayloads(snaps []sim.Snapshot) []SnapshotPayload {
	out := make([]SnapshotPayload, len(snaps))
	for i, s := range snaps {
		out[i] = SnapshotPayload{
			Date:        s.Date.Format("2006-01-02"),
			ValueKRW:    float64(s.ValueKRW),
			StockUSD:    float64(s.StockUSD),
			Price:       float64(s.Price),
			Drawdown:    s.Drawdown,
			TotalShares: s.TotalShares,
			CashKRW:     float64(s.CashKRW),
			BaselineKRW: float64(s.BaselineKRW),
		}
	}
	return out
}

func runPayload(r journal.Run) RunPayload {
	return RunPayload{
		RunID:       r.RunID,
		Created:     r.Created.Format("2006-01-02T15:04:05Z07:00"),
		Symbol:      r.Symbol,
		StartDate:   r.Start.Format("2006-01-02"),
		EndDate:     r.End.Format("2006-01-02"),
		FinalValue:  r.FinalValue,
		TotalReturn: r.ReturnPct,
		Purchases:   r.Purchases,
		MaxDrawdown: r.MaxDrawdownPct,
	}
}
