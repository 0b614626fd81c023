package risk

import "github.com/rustyeddy/riskgate/market"

// StandardLotNotional approximates the notional of one lot when converting
// correlated lot exposure into an equity percentage.
const StandardLotNotional = 100_000

// correlationRule sums same-direction lot exposure across the symbol's
// correlation bucket. One correlated position is informational; two or
// more over the account limit warn, or block when the account hard-blocks
// correlation.
type correlationRule struct{}

func (correlationRule) Name() string { return "correlation" }

func (correlationRule) Evaluate(in *Input) Outcome {
	var o Outcome
	bucket := market.CorrelatedWith(in.Request.Symbol)
	if len(bucket) == 0 {
		return o
	}

	var (
		count int
		lots  float64
	)
	for _, p := range in.Positions {
		if p.Direction != in.Request.Direction {
			continue
		}
		if !market.IsCorrelated(in.Request.Symbol, p.Symbol) {
			continue
		}
		count++
		lots += p.Lots
	}

	if count == 0 {
		return o
	}
	if count == 1 {
		o.Warn("one correlated %s position already open (%.2f lots)", in.Request.Direction, lots)
		return o
	}

	exposurePct := 0.0
	if in.Account.Equity > 0 {
		exposurePct = lots * StandardLotNotional / in.Account.Equity * 100
	}

	limit := in.Account.MaxCorrelatedExposurePct
	if limit > 0 && exposurePct >= limit {
		if in.Account.HardBlockCorrelation {
			o.Block("correlated exposure %.1f%% across %d positions exceeds %.1f%% limit",
				exposurePct, count, limit)
		} else {
			o.Warn("correlated exposure %.1f%% across %d positions exceeds %.1f%% limit",
				exposurePct, count, limit)
		}
		return o
	}

	o.Warn("%d correlated %s positions open (%.1f%% exposure)", count, in.Request.Direction, exposurePct)
	return o
}
