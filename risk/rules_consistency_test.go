package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsistencyRuleHardBlock(t *testing.T) {
	t.Parallel()

	// $2000 existing profit, 30% rule. Sized risk is $1000, so a 2R win
	// adds $2000: projected day 2000 of projected total 4000 = 50%.
	acct := healthyAccount()
	acct.ConsistencyRulePct = 30
	acct.CurrentProfit = 2000

	o := consistencyRule{}.Evaluate(baseInput(acct, baseRequest()))

	assert.Len(t, o.Blockers, 1)
	assert.Contains(t, o.Blockers[0], "50.0%")
	assert.Contains(t, o.Blockers[0], "30.0%")
}

func TestConsistencyRuleWarnsNearLimit(t *testing.T) {
	t.Parallel()

	// 2R win adds $2000 to a $38k base: 2000/40000 = 5%, limit 6% ->
	// above the 80% warn threshold (4.8%) but under the limit.
	acct := healthyAccount()
	acct.ConsistencyRulePct = 6
	acct.CurrentProfit = 38000

	o := consistencyRule{}.Evaluate(baseInput(acct, baseRequest()))

	assert.Empty(t, o.Blockers)
	assert.NotEmpty(t, o.Warnings)
	assert.Contains(t, o.Warnings[0], "approaching")
}

func TestConsistencyRuleCountsTodayRealized(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.ConsistencyRulePct = 40
	acct.CurrentProfit = 6000

	in := baseInput(acct, baseRequest())
	in.Stats.RealizedPL = 1500

	// (1500 + 2000) / 8000 = 43.75% > 40%.
	o := consistencyRule{}.Evaluate(in)
	assert.NotEmpty(t, o.Blockers)
}

func TestConsistencyRuleSkippedWithoutProfit(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.ConsistencyRulePct = 30
	acct.CurrentProfit = 0

	o := consistencyRule{}.Evaluate(baseInput(acct, baseRequest()))
	assert.Empty(t, o.Blockers)
	assert.Empty(t, o.Warnings)
}

func TestConsistencyRuleSkippedWhenDayNegative(t *testing.T) {
	t.Parallel()

	acct := healthyAccount()
	acct.ConsistencyRulePct = 30
	acct.CurrentProfit = 5000

	in := baseInput(acct, baseRequest())
	in.Stats.RealizedPL = -4000

	// Projected day (-4000 + 2000) is still negative.
	o := consistencyRule{}.Evaluate(in)
	assert.Empty(t, o.Blockers)
	assert.Empty(t, o.Warnings)
}
