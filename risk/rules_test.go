package risk

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// A Wednesday, mid-session UTC.
var wednesdayNoon = time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

func baseRequest() TradeRequest {
	return TradeRequest{
		Symbol:           "EURUSD",
		Direction:        Long,
		Entry:            1.0850,
		StopLoss:         1.0800,
		RequestedRiskPct: 1.0,
	}
}

func baseInput(acct AccountSnapshot, req TradeRequest) *Input {
	budget := ComputeBudget(acct, req.RequestedRiskPct)
	sizing, _ := Size(acct.Equity, budget.EffectiveRiskPct, req.Entry, req.StopLoss, req.Symbol)
	return &Input{
		Now:     wednesdayNoon,
		Account: acct,
		Request: req,
		Sizing:  sizing,
		Budget:  budget,
	}
}

func blockersOf(o Outcome) string { return strings.Join(o.Blockers, "; ") }
func warningsOf(o Outcome) string { return strings.Join(o.Warnings, "; ") }

func TestStatusGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status AccountStatus
		reason string
		block  bool
	}{
		{"active passes", StatusActive, "", false},
		{"inactive blocks", StatusInactive, "", true},
		{"failed blocks with reason", StatusFailed, "max drawdown breached", true},
		{"passed blocks", StatusPassed, "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			acct := healthyAccount()
			acct.Status = tt.status
			acct.FailureReason = tt.reason

			o := statusGate{}.Evaluate(baseInput(acct, baseRequest()))
			if !tt.block {
				assert.Empty(t, o.Blockers)
				return
			}
			assert.Len(t, o.Blockers, 1)
			assert.Contains(t, o.Blockers[0], string(tt.status))
			if tt.reason != "" {
				assert.Contains(t, o.Blockers[0], tt.reason)
			}
		})
	}
}

func TestLockGate(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.TradingLockedUntil = wednesdayNoon.Add(45 * time.Minute)
	acct.LockReason = "daily drawdown breach"

	o := lockGate{}.Evaluate(baseInput(acct, baseRequest()))
	assert.Len(t, o.Blockers, 1)
	assert.Contains(t, o.Blockers[0], "daily drawdown breach")

	// Expired lock passes.
	acct.TradingLockedUntil = wednesdayNoon.Add(-time.Minute)
	o = lockGate{}.Evaluate(baseInput(acct, baseRequest()))
	assert.Empty(t, o.Blockers)
}

func TestChecklistGate(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.RequireChecklistBeforeTrading = true

	in := baseInput(acct, baseRequest())
	o := checklistGate{}.Evaluate(in)
	assert.Len(t, o.Blockers, 1)
	assert.Contains(t, o.Blockers[0], "checklist")

	in.Stats.ChecklistDone = true
	o = checklistGate{}.Evaluate(in)
	assert.Empty(t, o.Blockers)
}

func TestTradingHoursRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		window *HoursWindow
		at     time.Time
		block  bool
	}{
		{"no window", nil, wednesdayNoon, false},
		{"inside", &HoursWindow{StartMinute: 8 * 60, EndMinute: 17 * 60}, wednesdayNoon, false},
		{"outside", &HoursWindow{StartMinute: 13 * 60, EndMinute: 17 * 60}, wednesdayNoon, true},
		{"overnight inside late", &HoursWindow{StartMinute: 22 * 60, EndMinute: 6 * 60},
			time.Date(2025, 3, 12, 23, 30, 0, 0, time.UTC), false},
		{"overnight inside early", &HoursWindow{StartMinute: 22 * 60, EndMinute: 6 * 60},
			time.Date(2025, 3, 12, 5, 0, 0, 0, time.UTC), false},
		{"overnight outside", &HoursWindow{StartMinute: 22 * 60, EndMinute: 6 * 60}, wednesdayNoon, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			acct := healthyAccount()
			acct.TradingHours = tt.window

			in := baseInput(acct, baseRequest())
			in.Now = tt.at

			o := tradingHoursRule{}.Evaluate(in)
			if tt.block {
				assert.NotEmpty(t, o.Blockers)
				assert.Contains(t, o.Blockers[0], "trading hours")
			} else {
				assert.Empty(t, o.Blockers)
			}
		})
	}
}

func TestCooldownRuleActive(t *testing.T) {
	t.Parallel()

	// Scenario: two losses, last one 10 minutes ago.
	in := baseInput(healthyAccount(), baseRequest())
	in.Stats = DailyBehaviorStats{
		ConsecutiveLosses: 2,
		LastLossAt:        wednesdayNoon.Add(-10 * time.Minute),
	}

	o := cooldownRule{}.Evaluate(in)

	assert.Len(t, o.Blockers, 1)
	assert.Contains(t, o.Blockers[0], "20 minute")
	assert.True(t, o.CoolingOffActive)
	if assert.NotNil(t, o.CoolingOffEndsAt) {
		assert.Equal(t, in.Stats.LastLossAt.Add(CooldownDuration), *o.CoolingOffEndsAt)
	}
}

func TestCooldownRuleExpired(t *testing.T) {
	t.Parallel()

	in := baseInput(healthyAccount(), baseRequest())
	in.Stats = DailyBehaviorStats{
		ConsecutiveLosses: 3,
		LastLossAt:        wednesdayNoon.Add(-31 * time.Minute),
	}

	o := cooldownRule{}.Evaluate(in)
	assert.Empty(t, o.Blockers)
	assert.False(t, o.CoolingOffActive)
}

func TestCooldownRuleSingleLossWarns(t *testing.T) {
	t.Parallel()

	in := baseInput(healthyAccount(), baseRequest())
	in.Stats = DailyBehaviorStats{
		ConsecutiveLosses: 1,
		LastLossAt:        wednesdayNoon.Add(-5 * time.Minute),
	}

	o := cooldownRule{}.Evaluate(in)
	assert.Empty(t, o.Blockers)
	assert.NotEmpty(t, o.Warnings)
}

func TestWeekendRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		at    time.Time
		block bool
	}{
		{"wednesday", wednesdayNoon, false},
		{"friday morning", time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC), false},
		{"friday after cutoff", time.Date(2025, 3, 14, 16, 0, 0, 0, time.UTC), true},
		{"saturday", time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC), true},
		{"sunday", time.Date(2025, 3, 16, 21, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := baseInput(healthyAccount(), baseRequest())
			in.Now = tt.at

			o := weekendRule{}.Evaluate(in)
			if tt.block {
				assert.NotEmpty(t, o.Blockers)
			} else {
				assert.Empty(t, o.Blockers)
			}
		})
	}
}

func TestWeekendRuleAllowedAccountPasses(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.WeekendHoldingAllowed = true

	in := baseInput(acct, baseRequest())
	in.Now = time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC) // Saturday

	assert.Empty(t, weekendRule{}.Evaluate(in).Blockers)
}

func TestTradeConstraintsStopRequired(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.StopLossRequired = true

	req := baseRequest()
	req.StopLoss = 0

	o := tradeConstraintsRule{}.Evaluate(baseInput(acct, req))
	assert.Len(t, o.Blockers, 1)
	assert.Contains(t, o.Blockers[0], "stop loss is required")
}

func TestTradeConstraintsMissingStopWarnsWhenOptional(t *testing.T) {
	t.Parallel()

	req := baseRequest()
	req.StopLoss = 0

	o := tradeConstraintsRule{}.Evaluate(baseInput(healthyAccount(), req))
	assert.Empty(t, o.Blockers)
	assert.NotEmpty(t, o.Warnings)
}

func TestTradeConstraintsMinStopPips(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.MinStopLossPips = 10

	req := baseRequest()
	req.StopLoss = 1.0845 // 5 pips

	o := tradeConstraintsRule{}.Evaluate(baseInput(acct, req))
	assert.NotEmpty(t, o.Blockers)
	assert.Contains(t, o.Blockers[0], "below minimum")
}

func TestTradeConstraintsTinyLotBlocks(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.Equity = 100 // 1% of $100 over 50 pips sizes to zero lots

	o := tradeConstraintsRule{}.Evaluate(baseInput(acct, baseRequest()))
	assert.NotEmpty(t, o.Blockers)
	assert.Contains(t, blockersOf(o), "minimum tradable size")
}

func TestTradeConstraintsMaxLotSoftClip(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.MaxLotSize = 1.5 // sized lots are 2.0

	o := tradeConstraintsRule{}.Evaluate(baseInput(acct, baseRequest()))
	assert.Empty(t, o.Blockers)
	assert.InDelta(t, 1.5, o.MaxLots, 1e-9)
	assert.Contains(t, warningsOf(o), "clipped")
}

func TestOpenPositionsCountBlocks(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.MaxOpenTrades = 2

	in := baseInput(acct, baseRequest())
	in.Positions = []OpenPosition{
		{Symbol: "GBPUSD", Direction: Long, Lots: 1},
		{Symbol: "USDJPY", Direction: Short, Lots: 1},
	}

	o := openPositionsRule{}.Evaluate(in)
	assert.NotEmpty(t, o.Blockers)
	assert.Contains(t, o.Blockers[0], "open trade count")
}

func TestOpenPositionsLotHeadroomClips(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.MaxOpenLots = 5

	in := baseInput(acct, baseRequest()) // sized at 2.0 lots
	in.Positions = []OpenPosition{{Symbol: "GBPUSD", Direction: Long, Lots: 4}}

	o := openPositionsRule{}.Evaluate(in)
	assert.Empty(t, o.Blockers)
	assert.InDelta(t, 1.0, o.MaxLots, 1e-9)
	assert.Contains(t, warningsOf(o), "clipped")
}

func TestOpenPositionsNoHeadroomBlocks(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.MaxOpenLots = 5

	in := baseInput(acct, baseRequest())
	in.Positions = []OpenPosition{{Symbol: "GBPUSD", Direction: Long, Lots: 5}}

	o := openPositionsRule{}.Evaluate(in)
	assert.NotEmpty(t, o.Blockers)
	assert.Contains(t, o.Blockers[0], "no headroom")
}

func TestHedgingRuleBlocksOpposite(t *testing.T) {
	t.Parallel()

	// Scenario: open EURUSD long, request EURUSD short, hedging off.
	req := baseRequest()
	req.Direction = Short

	in := baseInput(healthyAccount(), req)
	in.Positions = []OpenPosition{{Symbol: "EURUSD", Direction: Long, Lots: 1}}

	o := hedgingRule{}.Evaluate(in)
	assert.Len(t, o.Blockers, 1)
	assert.Contains(t, o.Blockers[0], "hedging not allowed")
}

func TestHedgingRuleAllowsWhenEnabled(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.HedgingAllowed = true

	req := baseRequest()
	req.Direction = Short

	in := baseInput(acct, req)
	in.Positions = []OpenPosition{{Symbol: "EUR_USD", Direction: Long, Lots: 1}}

	assert.Empty(t, hedgingRule{}.Evaluate(in).Blockers)
}

func TestProhibitedRule(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.ProhibitedInstruments = []string{"jpy", "XAU"}

	tests := []struct {
		symbol string
		block  bool
	}{
		{"USDJPY", true},
		{"gbpjpy", true},
		{"XAUUSD", true},
		{"EURUSD", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.symbol, func(t *testing.T) {
			t.Parallel()

			req := baseRequest()
			req.Symbol = tt.symbol

			o := prohibitedRule{}.Evaluate(baseInput(acct, req))
			if tt.block {
				assert.NotEmpty(t, o.Blockers)
				assert.Contains(t, o.Blockers[0], "prohibited")
			} else {
				assert.Empty(t, o.Blockers)
			}
		})
	}
}

func TestMartingaleRuleWarnsOnly(t *testing.T) {
	t.Parallel()

	in := baseInput(healthyAccount(), baseRequest())
	in.Positions = []OpenPosition{{Symbol: "EURUSD", Direction: Long, Lots: 2}}

	o := martingaleRule{}.Evaluate(in)
	assert.Empty(t, o.Blockers)
	assert.NotEmpty(t, o.Warnings)
	assert.Contains(t, o.Warnings[0], "martingale")
}

func TestMartingaleRuleSilentWhenAllowed(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.MartingaleAllowed = true

	in := baseInput(acct, baseRequest())
	in.Positions = []OpenPosition{{Symbol: "EURUSD", Direction: Long, Lots: 2}}

	o := martingaleRule{}.Evaluate(in)
	assert.Empty(t, o.Blockers)
	assert.Empty(t, o.Warnings)
}

func TestScalingNotice(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.CurrentRiskMultiplier = 0.75
	acct.ScalingWeek = 3

	o := scalingNotice{}.Evaluate(baseInput(acct, baseRequest()))
	assert.Empty(t, o.Blockers)
	assert.Contains(t, warningsOf(o), "week 3")
	assert.Contains(t, warningsOf(o), "75%")
}
