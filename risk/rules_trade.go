package risk

import (
	"strings"

	"github.com/rustyeddy/riskgate/market"
)

// tradeConstraintsRule covers the per-trade checks: stop-loss presence,
// minimum stop distance, minimum lot size, and the max-lot soft clip.
type tradeConstraintsRule struct{}

func (tradeConstraintsRule) Name() string { return "trade-constraints" }

func (tradeConstraintsRule) Evaluate(in *Input) Outcome {
	var o Outcome
	acct := in.Account

	if in.Request.StopLoss == 0 {
		if acct.StopLossRequired {
			o.Block("stop loss is required on this account")
		} else {
			o.Warn("no stop loss set: risk-based sizing unavailable")
		}
		return o
	}

	if acct.MinStopLossPips > 0 && in.Sizing.StopPips > 0 && in.Sizing.StopPips < acct.MinStopLossPips {
		o.Block("stop distance %.1f pips below minimum %.1f pips",
			in.Sizing.StopPips, acct.MinStopLossPips)
	}

	if in.Sizing.StopPips > 0 && in.Sizing.Lots < MinLotIncrement {
		o.Block("computed lot size %.4f below minimum tradable size %.2f",
			in.Sizing.Lots, MinLotIncrement)
	}

	if acct.MaxLotSize > 0 && in.Sizing.Lots > acct.MaxLotSize {
		o.MaxLots = acct.MaxLotSize
		o.Warn("lot size %.2f clipped to account maximum %.2f", in.Sizing.Lots, acct.MaxLotSize)
	}

	return o
}

// openPositionsRule enforces the open-trade count and the aggregate
// open-lot ceiling. Remaining lot headroom is clipped into the size when
// some exists, blocked when none does.
type openPositionsRule struct{}

func (openPositionsRule) Name() string { return "open-positions" }

func (openPositionsRule) Evaluate(in *Input) Outcome {
	var o Outcome
	acct := in.Account

	if acct.MaxOpenTrades > 0 && len(in.Positions) >= acct.MaxOpenTrades {
		o.Block("open trade count %d at account maximum %d", len(in.Positions), acct.MaxOpenTrades)
	}

	if acct.MaxOpenLots <= 0 {
		return o
	}

	var openLots float64
	for _, p := range in.Positions {
		openLots += p.Lots
	}

	if openLots+in.Sizing.Lots <= acct.MaxOpenLots {
		return o
	}

	headroom := FloorLots(acct.MaxOpenLots - openLots)
	if headroom < MinLotIncrement {
		o.Block("open lots %.2f leave no headroom under maximum %.2f", openLots, acct.MaxOpenLots)
		return o
	}

	o.MaxLots = headroom
	o.Warn("lot size clipped to %.2f: open lots %.2f of %.2f maximum", headroom, openLots, acct.MaxOpenLots)
	return o
}

// hedgingRule blocks an opposite-direction trade on a symbol that already
// has an open position when hedging is disallowed.
type hedgingRule struct{}

func (hedgingRule) Name() string { return "hedging" }

func (hedgingRule) Evaluate(in *Input) Outcome {
	var o Outcome
	if in.Account.HedgingAllowed {
		return o
	}
	symbol := market.Normalize(in.Request.Symbol)
	for _, p := range in.Positions {
		if market.Normalize(p.Symbol) == symbol && p.Direction == in.Request.Direction.Opposite() {
			o.Block("hedging not allowed: open %s position on %s", p.Direction, p.Symbol)
			return o
		}
	}
	return o
}

// prohibitedRule matches the requested symbol against the account's
// deny-list, case-insensitive substring semantics.
type prohibitedRule struct{}

func (prohibitedRule) Name() string { return "prohibited" }

func (prohibitedRule) Evaluate(in *Input) Outcome {
	var o Outcome
	symbol := strings.ToUpper(in.Request.Symbol)
	for _, banned := range in.Account.ProhibitedInstruments {
		b := strings.ToUpper(strings.TrimSpace(banned))
		if b == "" {
			continue
		}
		if strings.Contains(symbol, b) {
			o.Block("instrument %s is prohibited on this account (matches %q)", in.Request.Symbol, banned)
			return o
		}
	}
	return o
}

// martingaleRule flags adding to a same-direction position. Detection
// only: stacking entries is behavioral, not a hard technical violation.
type martingaleRule struct{}

func (martingaleRule) Name() string { return "martingale" }

func (martingaleRule) Evaluate(in *Input) Outcome {
	var o Outcome
	if in.Account.MartingaleAllowed {
		return o
	}
	symbol := market.Normalize(in.Request.Symbol)
	for _, p := range in.Positions {
		if market.Normalize(p.Symbol) == symbol && p.Direction == in.Request.Direction {
			o.Warn("possible martingale: already %s %s with %.2f lots", p.Direction, p.Symbol, p.Lots)
			return o
		}
	}
	return o
}
