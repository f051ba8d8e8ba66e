package cmd

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/minwookim/ladder/api"
	"github.com/minwookim/ladder/data"
	"github.com/minwookim/ladder/journal"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the backtester as an HTTP API",
	Long: `Serve starts the HTTP API used by the web client. Every backtest run
through the API is journaled to the SQLite database and readable back
through the /api/v1/runs endpoints.

Example:
  ladder serve --addr :8080 --db ./ladder.sqlite`,
	RunE: runServe,
}

var (
	serveAddr     string
	serveDBPath   string
	serveCacheDir string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "listen address")
	serveCmd.Flags().StringVarP(&serveDBPath, "db", "d", "./ladder.sqlite", "path to SQLite journal DB")
	serveCmd.Flags().StringVar(&serveCacheDir, "cache-dir", "./data-cache", "price series cache directory")
}

func runServe(cmd *cobra.Command, args []string) error {
	if os.Getenv("LADDER_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	j, err := journal.NewSQLite(serveDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	feed := data.NewYahooClient(serveCacheDir)
	srv := api.New(feed, j, j)

	fmt.Printf("Serving on %s (journal: %s)\n", serveAddr, serveDBPath)
	return srv.Run(serveAddr)
}
