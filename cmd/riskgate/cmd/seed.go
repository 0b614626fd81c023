package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/riskgate/risk"
	"github.com/rustyeddy/riskgate/store"
)

var seedAccount string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with a demo account",
	Long: `Insert a demo funded account with typical prop-firm limits into the
configured store. Useful for local development and smoke testing.

Example:
  riskgate seed --account ACC-1`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedAccount, "account", "ACC-1", "account ID to create")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.NewSQLite(cfg.Store.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	acct := risk.AccountSnapshot{
		ID:     seedAccount,
		Equity: 100_000,

		MaxRiskPerTradePct:    2.0,
		DailyDrawdownLimitPct: 5.0,
		MaxDrawdownLimitPct:   10.0,

		Status: risk.StatusActive,

		StopLossRequired:   true,
		NewsTradingAllowed: false,

		MaxLotSize:               10,
		MaxOpenTrades:            5,
		MaxOpenLots:              20,
		MinStopLossPips:          5,
		MaxCorrelatedExposurePct: 4.0,
		ConsistencyRulePct:       30.0,

		CurrentRiskMultiplier: 1.0,
	}

	if err := st.SaveAccount(cmd.Context(), acct); err != nil {
		return err
	}

	fmt.Printf("seeded account %s (equity %.0f, daily %.1f%%, max %.1f%%)\n",
		acct.ID, acct.Equity, acct.DailyDrawdownLimitPct, acct.MaxDrawdownLimitPct)
	return nil
}
