package risk

import (
	"fmt"
	"time"
)

// Input is everything one evaluation sees: the snapshot, the request, the
// caller-supplied behavioral state, the market context, and the sizing and
// budget the engine computed up front. Now is the frozen evaluation time;
// rules never read the wall clock themselves.
type Input struct {
	Now       time.Time
	Account   AccountSnapshot
	Request   TradeRequest
	Positions []OpenPosition
	Stats     DailyBehaviorStats
	Market    MarketContext
	Sizing    Sizing
	Budget    Budget
}

// Outcome is one evaluator's contribution to the decision. MaxLots > 0 is
// a soft clip on the final lot size; the aggregator keeps the smallest.
type Outcome struct {
	Blockers []string
	Warnings []string
	MaxLots  float64

	NewsWindow       *NewsWindow
	CoolingOffActive bool
	CoolingOffEndsAt *time.Time
}

// Block appends a hard failure.
func (o *Outcome) Block(format string, args ...any) {
	o.Blockers = append(o.Blockers, fmt.Sprintf(format, args...))
}

// Warn appends a soft notice.
func (o *Outcome) Warn(format string, args ...any) {
	o.Warnings = append(o.Warnings, fmt.Sprintf(format, args...))
}

// Evaluator is one independent admission rule. Rules are order-insensitive
// with respect to the final blocker set; the engine only orders them to
// short-circuit the news fetch behind the account gates.
type Evaluator interface {
	Name() string
	Evaluate(in *Input) Outcome
}
