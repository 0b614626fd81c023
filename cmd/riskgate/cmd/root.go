package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskgate/config"
	"github.com/rustyeddy/riskgate/market"
)

var rootCmd = &cobra.Command{
	Use:   "riskgate",
	Short: "Trade admission and risk validation for funded trading accounts",
	Long: `Riskgate decides, for a single proposed trade on a funded or evaluation
account, whether the trade may proceed and at what maximum safe position
size.

It combines stateful risk budgets, multi-rule policy evaluation,
time-windowed restrictions, correlation analysis across open positions,
and risk-derived position sizing into one deterministic decision.`,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
}

// loadConfig reads the configured file (or defaults), applies logging
// settings and any table overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, err
		}
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Logging.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if cfg.Tables.Path != "" {
		if err := market.LoadTables(cfg.Tables.Path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
