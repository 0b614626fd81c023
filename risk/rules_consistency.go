package risk

// Consistency projection assumes a 2:1 reward on the trade's risk amount.
const (
	consistencyRewardMultiple = 2.0
	consistencyWarnFraction   = 0.8
)

// consistencyRule projects today's P&L with this trade won at 2R and
// checks the day's share of total profit against the account's
// consistency limit. Breaching the limit is a hard block: the rule exists
// to protect evaluation-pass integrity, not to advise.
type consistencyRule struct{}

func (consistencyRule) Name() string { return "consistency" }

func (consistencyRule) Evaluate(in *Input) Outcome {
	var o Outcome
	limit := in.Account.ConsistencyRulePct
	if limit <= 0 || in.Account.CurrentProfit <= 0 {
		return o
	}

	reward := in.Sizing.RiskAmount * consistencyRewardMultiple
	projectedDay := in.Stats.RealizedPL + reward
	if projectedDay <= 0 {
		return o
	}

	projectedTotal := in.Account.CurrentProfit + reward
	dayPct := projectedDay / projectedTotal * 100

	switch {
	case dayPct > limit:
		o.Block("consistency rule: projected daily profit would be %.1f%% of total, limit %.1f%%",
			dayPct, limit)
	case dayPct > limit*consistencyWarnFraction:
		o.Warn("consistency rule: projected daily profit %.1f%% of total approaching %.1f%% limit",
			dayPct, limit)
	}
	return o
}
