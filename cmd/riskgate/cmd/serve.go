package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskgate/config"
	"github.com/rustyeddy/riskgate/journal"
	"github.com/rustyeddy/riskgate/news"
	"github.com/rustyeddy/riskgate/risk"
	"github.com/rustyeddy/riskgate/server"
	"github.com/rustyeddy/riskgate/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the validation HTTP service",
	Long: `Start the riskgate HTTP service.

Exposes POST /v1/validate for trade admission decisions, plus /health and
/metrics.

Example:
  riskgate serve -f riskgate.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.NewSQLite(cfg.Store.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	aud, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return err
	}
	defer aud.Close()

	engine := risk.New()
	if cfg.News.URL != "" {
		timeout, err := config.ParseTimeout(cfg.News.Timeout, 5*time.Second)
		if err != nil {
			return err
		}
		engine.News = news.NewClient(cfg.News.URL, timeout)
	}

	metrics := server.NewMetrics(prometheus.NewRegistry())
	svc := server.NewService(engine, st, st, aud, metrics)

	readTimeout, err := config.ParseTimeout(cfg.Server.ReadTimeout, 10*time.Second)
	if err != nil {
		return err
	}
	writeTimeout, err := config.ParseTimeout(cfg.Server.WriteTimeout, 10*time.Second)
	if err != nil {
		return err
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.Server.Host
	srvCfg.Port = cfg.Server.Port
	srvCfg.ReadTimeout = readTimeout
	srvCfg.WriteTimeout = writeTimeout

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(srvCfg, svc).Start(ctx)
}
