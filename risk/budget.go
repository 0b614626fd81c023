package risk

import "fmt"

// Policy constants for the risk budget. The half/third fractions stop one
// trade from consuming the entire remaining drawdown budget.
const (
	dailyBudgetFraction = 0.5
	maxBudgetFraction   = 0.3

	// RecoveryRiskCeilingPct caps effective risk while recovery mode is on.
	RecoveryRiskCeilingPct = 0.5

	minDailyRemainingPct = 0.5
	minMaxRemainingPct   = 1.0
	minEffectiveRiskPct  = 0.1
)

// Budget is the effective risk available for one trade, with any budget
// blockers and warnings attached.
type Budget struct {
	DailyRemainingPct float64
	MaxRemainingPct   float64
	SafeRiskPct       float64
	ScaledRiskPct     float64
	EffectiveRiskPct  float64

	Blockers []string
	Warnings []string
}

// ComputeBudget derives the effective risk percentage for the request from
// the account's drawdown state, recovery mode and scaling multiplier.
func ComputeBudget(acct AccountSnapshot, requestedRiskPct float64) Budget {
	b := Budget{
		DailyRemainingPct: acct.DailyDrawdownLimitPct - acct.DailyDrawdownUsedPct,
		MaxRemainingPct:   acct.MaxDrawdownLimitPct - acct.MaxDrawdownUsedPct,
	}

	if b.DailyRemainingPct <= minDailyRemainingPct {
		b.Blockers = append(b.Blockers, fmt.Sprintf(
			"daily drawdown limit nearly exhausted: %.2f%% remaining", b.DailyRemainingPct))
	}
	if b.MaxRemainingPct <= minMaxRemainingPct {
		b.Blockers = append(b.Blockers, fmt.Sprintf(
			"account at critical risk: %.2f%% of max drawdown remaining", b.MaxRemainingPct))
	}

	b.SafeRiskPct = min3(
		b.DailyRemainingPct*dailyBudgetFraction,
		b.MaxRemainingPct*maxBudgetFraction,
		acct.MaxRiskPerTradePct,
	)

	if acct.RecoveryModeActive {
		if b.SafeRiskPct > RecoveryRiskCeilingPct {
			b.SafeRiskPct = RecoveryRiskCeilingPct
		}
		b.Warnings = append(b.Warnings, fmt.Sprintf(
			"recovery mode active: risk capped at %.2f%%", RecoveryRiskCeilingPct))
	}

	multiplier := acct.CurrentRiskMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	b.ScaledRiskPct = b.SafeRiskPct * multiplier

	b.EffectiveRiskPct = requestedRiskPct
	if b.ScaledRiskPct < b.EffectiveRiskPct {
		b.EffectiveRiskPct = b.ScaledRiskPct
	}

	if b.EffectiveRiskPct < minEffectiveRiskPct {
		b.Blockers = append(b.Blockers, fmt.Sprintf(
			"insufficient risk budget: effective risk %.2f%% below %.2f%% minimum",
			b.EffectiveRiskPct, minEffectiveRiskPct))
	}

	return b
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
