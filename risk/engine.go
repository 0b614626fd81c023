package risk

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/riskgate/market"
)

// NewsSource supplies upcoming high-impact calendar events. Implementations
// must bound the call with ctx; an error degrades the news rule to a
// warning rather than failing the decision.
type NewsSource interface {
	UpcomingEvents(ctx context.Context, currencies []string, within time.Duration) ([]NewsEvent, error)
}

// Engine validates one proposed trade against an account snapshot. It holds
// no per-account state; everything it reads arrives in the call.
//
// Now is the clock used for all time-windowed rules, injectable so tests
// run against a frozen instant.
type Engine struct {
	Now  func() time.Time
	News NewsSource

	gates []Evaluator
	rules []Evaluator
}

// New builds an engine with the full rule registry. The account gates run
// first so a certain denial skips the calendar fetch; every other rule
// always runs so the caller sees the complete violation set.
func New() *Engine {
	return &Engine{
		Now: time.Now,
		gates: []Evaluator{
			statusGate{},
			lockGate{},
			checklistGate{},
		},
		rules: []Evaluator{
			budgetRule{},
			tradingHoursRule{},
			cooldownRule{},
			tradeConstraintsRule{},
			openPositionsRule{},
			hedgingRule{},
			prohibitedRule{},
			martingaleRule{},
			newsRule{},
			weekendRule{},
			correlationRule{},
			consistencyRule{},
			scalingNotice{},
		},
	}
}

// Validate runs the full admission pipeline and returns the aggregated
// decision. It is a pure function of the inputs and the injected clock;
// the one outbound call is the calendar fetch, skipped when an account
// gate has already denied the trade.
func (e *Engine) Validate(ctx context.Context, acct AccountSnapshot, req TradeRequest,
	positions []OpenPosition, stats DailyBehaviorStats) ValidationResult {

	if err := req.Validate(); err != nil {
		return Deny(err.Error())
	}

	now := e.Now().UTC()
	budget := ComputeBudget(acct, req.RequestedRiskPct)

	var (
		sizing  Sizing
		sizeErr error
	)
	if req.StopLoss > 0 {
		sizing, sizeErr = Size(acct.Equity, budget.EffectiveRiskPct, req.Entry, req.StopLoss, req.Symbol)
	}

	in := &Input{
		Now:       now,
		Account:   acct,
		Request:   req,
		Positions: positions,
		Stats:     stats,
		Sizing:    sizing,
		Budget:    budget,
	}

	agg := newAggregator()
	if sizeErr != nil {
		agg.blockers = append(agg.blockers, fmt.Sprintf("invalid stop distance: %v", sizeErr))
	}

	for _, g := range e.gates {
		agg.merge(g.Evaluate(in))
	}
	gatesBlocked := len(agg.blockers) > 0

	if !gatesBlocked {
		in.Market = e.fetchMarketContext(ctx, acct, req)
	}

	for _, r := range e.rules {
		if gatesBlocked && r.Name() == "news" {
			continue
		}
		agg.merge(r.Evaluate(in))
	}

	return agg.result(in)
}

func (e *Engine) fetchMarketContext(ctx context.Context, acct AccountSnapshot, req TradeRequest) MarketContext {
	if acct.NewsTradingAllowed {
		return MarketContext{}
	}
	if e.News == nil {
		return MarketContext{Unavailable: true}
	}

	buffer := time.Duration(acct.NewsBufferMinutes) * time.Minute
	if buffer <= 0 {
		buffer = DefaultNewsBufferMinutes * time.Minute
	}

	events, err := e.News.UpcomingEvents(ctx, market.Currencies(req.Symbol), buffer)
	if err != nil {
		return MarketContext{Unavailable: true}
	}
	return MarketContext{Events: events}
}

// aggregator folds evaluator outcomes into the final result.
type aggregator struct {
	blockers []string
	warnings []string
	lotCap   float64 // smallest soft-clip override, 0 = none

	newsWindow       *NewsWindow
	coolingOffActive bool
	coolingOffEndsAt *time.Time
}

func newAggregator() *aggregator {
	return &aggregator{
		blockers: []string{},
		warnings: []string{},
	}
}

func (a *aggregator) merge(o Outcome) {
	a.blockers = append(a.blockers, o.Blockers...)
	a.warnings = append(a.warnings, o.Warnings...)
	if o.MaxLots > 0 && (a.lotCap == 0 || o.MaxLots < a.lotCap) {
		a.lotCap = o.MaxLots
	}
	if o.NewsWindow != nil && a.newsWindow == nil {
		a.newsWindow = o.NewsWindow
	}
	if o.CoolingOffActive && !a.coolingOffActive {
		a.coolingOffActive = true
		a.coolingOffEndsAt = o.CoolingOffEndsAt
	}
}

func (a *aggregator) result(in *Input) ValidationResult {
	res := ValidationResult{
		Allowed:  len(a.blockers) == 0,
		Blockers: a.blockers,
		Warnings: a.warnings,

		RiskAmount: in.Sizing.RiskAmount,

		DailyDrawdownRemainingPct: in.Budget.DailyRemainingPct,
		MaxDrawdownRemainingPct:   in.Budget.MaxRemainingPct,

		NewsWindow:         a.newsWindow,
		RecoveryModeActive: in.Account.RecoveryModeActive,
		CoolingOffActive:   a.coolingOffActive,
		CoolingOffEndsAt:   a.coolingOffEndsAt,
	}

	if until := in.Account.TradingLockedUntil; !until.IsZero() && until.After(in.Now) {
		u := until
		res.TradingLockedUntil = &u
	}

	maxAllowed := math.Inf(1)
	if in.Account.MaxLotSize > 0 {
		maxAllowed = in.Account.MaxLotSize
	}
	if a.lotCap > 0 && a.lotCap < maxAllowed {
		maxAllowed = a.lotCap
	}
	if math.IsInf(maxAllowed, 1) {
		maxAllowed = in.Sizing.Lots
	}
	res.MaxAllowedLotSize = maxAllowed

	if res.Allowed {
		adjusted := in.Sizing.Lots
		if adjusted > maxAllowed {
			adjusted = maxAllowed
		}
		res.AdjustedLotSize = adjusted
	}

	return res
}
