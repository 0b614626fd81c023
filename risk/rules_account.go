package risk

// statusGate denies anything on a non-active account.
type statusGate struct{}

func (statusGate) Name() string { return "status" }

func (statusGate) Evaluate(in *Input) Outcome {
	var o Outcome
	if in.Account.Status == StatusActive {
		return o
	}
	if in.Account.FailureReason != "" {
		o.Block("account is %s: %s", in.Account.Status, in.Account.FailureReason)
	} else {
		o.Block("account is %s", in.Account.Status)
	}
	return o
}

// lockGate enforces an admin or breach lock until its expiry.
type lockGate struct{}

func (lockGate) Name() string { return "lock" }

func (lockGate) Evaluate(in *Input) Outcome {
	var o Outcome
	until := in.Account.TradingLockedUntil
	if until.IsZero() || !until.After(in.Now) {
		return o
	}
	reason := in.Account.LockReason
	if reason == "" {
		reason = "trading locked"
	}
	o.Block("%s (locked until %s)", reason, until.UTC().Format("2006-01-02 15:04 MST"))
	return o
}

// checklistGate requires the day's pre-trading checklist when the account
// demands one.
type checklistGate struct{}

func (checklistGate) Name() string { return "checklist" }

func (checklistGate) Evaluate(in *Input) Outcome {
	var o Outcome
	if in.Account.RequireChecklistBeforeTrading && !in.Stats.ChecklistDone {
		o.Block("pre-trading checklist not completed today")
	}
	return o
}

// budgetRule republishes the risk-budget blockers and warnings computed by
// the engine so the decision stays a plain fold over rule outcomes.
type budgetRule struct{}

func (budgetRule) Name() string { return "budget" }

func (budgetRule) Evaluate(in *Input) Outcome {
	return Outcome{
		Blockers: in.Budget.Blockers,
		Warnings: in.Budget.Warnings,
	}
}

// scalingNotice reports a reduced-risk scaling week. Informational only.
type scalingNotice struct{}

func (scalingNotice) Name() string { return "scaling" }

func (scalingNotice) Evaluate(in *Input) Outcome {
	var o Outcome
	m := in.Account.CurrentRiskMultiplier
	if m > 0 && m < 1 {
		o.Warn("scaling plan week %d: risk reduced to %.0f%% of normal",
			in.Account.ScalingWeek, m*100)
	}
	return o
}
