package risk

import "time"

// Psychology cooldown policy.
const (
	CooldownLossThreshold = 2
	CooldownDuration      = 30 * time.Minute
)

// Weekend-holding cutoff: Friday 16:00 UTC.
const fridayCutoffMinute = 16 * 60

// tradingHoursRule blocks outside the account's allowed UTC window. A nil
// window means round-the-clock trading.
type tradingHoursRule struct{}

func (tradingHoursRule) Name() string { return "trading-hours" }

func (tradingHoursRule) Evaluate(in *Input) Outcome {
	var o Outcome
	w := in.Account.TradingHours
	if w == nil {
		return o
	}
	now := in.Now.UTC()
	minute := now.Hour()*60 + now.Minute()
	if !w.Contains(minute) {
		o.Block("outside allowed trading hours (%02d:%02d-%02d:%02d UTC)",
			w.StartMinute/60, w.StartMinute%60, w.EndMinute/60, w.EndMinute%60)
	}
	return o
}

// cooldownRule enforces the post-loss psychology cooldown: two or more
// consecutive losses start a 30-minute lockout from the last loss, a single
// loss is a warning only.
type cooldownRule struct{}

func (cooldownRule) Name() string { return "cooldown" }

func (cooldownRule) Evaluate(in *Input) Outcome {
	var o Outcome
	losses := in.Stats.ConsecutiveLosses

	if losses == 1 {
		o.Warn("one loss today: consider slowing down")
		return o
	}
	if losses < CooldownLossThreshold || in.Stats.LastLossAt.IsZero() {
		return o
	}

	endsAt := in.Stats.LastLossAt.Add(CooldownDuration)
	if !in.Now.Before(endsAt) {
		return o
	}

	remaining := endsAt.Sub(in.Now).Round(time.Minute)
	mins := int(remaining / time.Minute)
	if mins < 1 {
		mins = 1
	}
	o.Block("cooling off after %d consecutive losses: %d minute(s) remaining", losses, mins)
	o.CoolingOffActive = true
	ends := endsAt
	o.CoolingOffEndsAt = &ends
	return o
}

// weekendRule blocks new positions from Friday 16:00 UTC through Sunday
// when the account may not hold over the weekend.
type weekendRule struct{}

func (weekendRule) Name() string { return "weekend" }

func (weekendRule) Evaluate(in *Input) Outcome {
	var o Outcome
	if in.Account.WeekendHoldingAllowed {
		return o
	}
	now := in.Now.UTC()
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		o.Block("weekend holding not allowed on this account")
	case time.Friday:
		if now.Hour()*60+now.Minute() >= fridayCutoffMinute {
			o.Block("weekend holding not allowed: no new trades after Friday 16:00 UTC")
		}
	}
	return o
}
