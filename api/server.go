// Package api exposes the backtester over HTTP for the web client.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minwookim/ladder/backtest"
	"github.com/minwookim/ladder/data"
	"github.com/minwookim/ladder/journal"
	"github.com/minwookim/ladder/market"
	"github.com/minwookim/ladder/strategy"
)

// Store reads journaled runs back for the GET endpoints.
// *journal.SQLiteJournal satisfies it.
type Store interface {
	GetRun(runID string) (journal.Run, error)
	ListRuns(limit int) ([]journal.Run, error)
	ListTradesByRun(runID string) ([]journal.TradeRecord, error)
	ListSnapshotsByRun(runID string) ([]journal.SnapshotRecord, error)
}

// Server wires the backtest runner behind a gin router. Journal and store
// may be nil: runs then stay in memory and the history endpoints report
// that no journal is configured.
type Server struct {
	feed    backtest.Feed
	journal journal.Journal
	store   Store
	router  *gin.Engine
}

func New(feed backtest.Feed, j journal.Journal, store Store) *Server {
	s := &Server{feed: feed, journal: j, store: store}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(CORS())
	r.Use(ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/backtest", s.runBacktest)
		v1.GET("/runs", s.listRuns)
		v1.GET("/runs/:id", s.getRun)
		v1.GET("/runs/:id/trades", s.getRunTrades)
		v1.GET("/runs/:id/snapshots", s.getRunSnapshots)
	}

	s.router = r
	return s
}

// Router exposes the handler for tests and custom servers.
func (s *Server) Router() http.Handler { return s.router }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error { return s.router.Run(addr) }

func (s *Server) runBacktest(c *gin.Context) {
	var req BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	applyDefaults(&req)

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_DATE", Message: "startDate must be YYYY-MM-DD"},
		})
		return
	}
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if req.EndDate != "" {
		end, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: ErrorDetail{Code: "INVALID_DATE", Message: "endDate must be YYYY-MM-DD"},
			})
			return
		}
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_DATE", Message: "endDate is before startDate"},
		})
		return
	}

	p := strategy.Params{
		InitialInvestment: market.KRW(req.InitialInvestment),
		DropInterval:      req.DropInterval,
		Multiplier:        req.Multiplier,
		SellRecovery:      req.SellRecovery,
		MaxSteps:          req.MaxSteps,
		MinPurchase:       market.KRW(req.MinPurchase),
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_PARAMS", Message: err.Error()},
		})
		return
	}
	if req.InitialCash <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_PARAMS", Message: "initialCash must be positive"},
		})
		return
	}

	runner := backtest.Runner{Feed: s.feed, Journal: s.journal}
	res, err := runner.Run(c.Request.Context(), req.Symbol, start, end,
		market.KRW(req.InitialCash), market.FXRate(req.ExchangeRate), p)
	if err != nil {
		var apiErr *data.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, ErrorResponse{
				Error: ErrorDetail{Code: "DATA_FETCH_ERROR", Message: apiErr.Error()},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "BACKTEST_ERROR", Message: err.Error()},
		})
		return
	}

	resp := BacktestResponse{
		RunID:     res.RunID,
		Symbol:    res.Symbol,
		StartDate: res.Start.Format("2006-01-02"),
		EndDate:   res.End.Format("2006-01-02"),
		Summary:   summaryPayload(res.Summary),
	}
	if req.IncludeTrades {
		resp.Trades = tradePayloads(res.Trades)
	}
	if req.IncludeSnapshots {
		resp.Snapshots = snapshotPayloads(res.Snapshots)
	}
	c.JSON(http.StatusOK, resp)
}

func applyDefaults(req *BacktestRequest) {
	if req.Symbol == "" {
		req.Symbol = "TQQQ"
	}
	if req.ExchangeRate == 0 {
		req.ExchangeRate = 1300
	}
	if req.InitialInvestment == 0 {
		req.InitialInvestment = 1_000_000
	}
	if req.DropInterval == 0 {
		req.DropInterval = 5
	}
	if req.Multiplier == 0 {
		req.Multiplier = 2
	}
	if req.SellRecovery == 0 {
		req.SellRecovery = 50
	}
	if req.MaxSteps == 0 {
		req.MaxSteps = 10
	}
	if req.MinPurchase == 0 {
		req.MinPurchase = 1_000_000
	}
}

func (s *Server) requireStore(c *gin.Context) bool {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: ErrorDetail{Code: "NO_JOURNAL", Message: "no journal store configured"},
		})
		return false
	}
	return true
}

func (s *Server) listRuns(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := s.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "JOURNAL_ERROR", Message: err.Error()},
		})
		return
	}

	out := make([]RunPayload, len(runs))
	for i, r := range runs {
		out[i] = runPayload(r)
	}
	c.JSON(http.StatusOK, gin.H{"runs": out})
}

func (s *Server) getRun(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	r, err := s.store.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "RUN_NOT_FOUND", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, runPayload(r))
}

func (s *Server) getRunTrades(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	trades, err := s.store.ListTradesByRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "JOURNAL_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trades": trades})
}

func (s *Server) getRunSnapshots(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	snaps, err := s.store.ListSnapshotsByRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "JOURNAL_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snaps})
}
