package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskgate/config"
	"github.com/rustyeddy/riskgate/journal"
	"github.com/rustyeddy/riskgate/news"
	"github.com/rustyeddy/riskgate/risk"
	"github.com/rustyeddy/riskgate/server"
	"github.com/rustyeddy/riskgate/store"
)

var (
	valAccount   string
	valSymbol    string
	valDirection string
	valEntry     float64
	valStop      float64
	valRisk      float64
	valTargets   []float64
	valNoAudit   bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a single trade from the command line",
	Long: `Run one trade request through the validation pipeline and print the
decision as JSON.

Example:
  riskgate validate --account ACC-1 --symbol EURUSD --direction long \
    --entry 1.0850 --stop 1.0800 --risk 1.0`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&valAccount, "account", "", "account ID to validate against")
	validateCmd.Flags().StringVar(&valSymbol, "symbol", "", "instrument symbol, e.g. EURUSD")
	validateCmd.Flags().StringVar(&valDirection, "direction", "long", "trade direction (long or short)")
	validateCmd.Flags().Float64Var(&valEntry, "entry", 0, "intended entry price")
	validateCmd.Flags().Float64Var(&valStop, "stop", 0, "stop loss price (0 if none)")
	validateCmd.Flags().Float64Var(&valRisk, "risk", 0, "requested risk percent of equity")
	validateCmd.Flags().Float64SliceVar(&valTargets, "tp", nil, "take profit levels")
	validateCmd.Flags().BoolVar(&valNoAudit, "no-audit", false, "skip writing the decision to the audit journal")

	validateCmd.MarkFlagRequired("account")
	validateCmd.MarkFlagRequired("symbol")
	validateCmd.MarkFlagRequired("entry")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.NewSQLite(cfg.Store.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	var aud journal.Journal = journal.Nop{}
	if !valNoAudit {
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return err
		}
		defer j.Close()
		aud = j
	}

	engine := risk.New()
	if cfg.News.URL != "" {
		timeout, err := config.ParseTimeout(cfg.News.Timeout, 5*time.Second)
		if err != nil {
			return err
		}
		engine.News = news.NewClient(cfg.News.URL, timeout)
	}

	svc := server.NewService(engine, st, st, aud, nil)

	req := risk.TradeRequest{
		Symbol:           valSymbol,
		Direction:        risk.Direction(valDirection),
		Entry:            valEntry,
		StopLoss:         valStop,
		TakeProfits:      valTargets,
		RequestedRiskPct: valRisk,
	}

	result, err := svc.ValidateTrade(cmd.Context(), valAccount, req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
