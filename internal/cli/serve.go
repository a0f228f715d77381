package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkravets/factlens/internal/pipeline"
	"github.com/mkravets/factlens/internal/server"
	"github.com/mkravets/factlens/internal/store"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the analysis engine over HTTP:

  POST /api/analyze     {"url": "..."}  run an analysis, persist and return the report
  GET  /api/history     list recent runs
  GET  /api/report/:id  fetch one stored report
  GET  /api/health      liveness probe

Example:
  factlens serve
  factlens serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	history, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() { _ = history.Close() }()

	return server.New(p, history).Run(cfg.Server.Addr)
}
