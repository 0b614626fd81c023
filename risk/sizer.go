package risk

import (
	"errors"
	"math"

	"github.com/rustyeddy/riskgate/market"
)

// ErrZeroStopDistance is returned when entry equals stop-loss. The sizing
// math divides by stop distance, so this must be rejected up front instead
// of propagating Inf/NaN into the decision.
var ErrZeroStopDistance = errors.New("entry and stop-loss are equal: zero stop distance")

// MinLotIncrement is the smallest tradable lot step.
const MinLotIncrement = 0.01

// Sizing is the output of the position sizer.
type Sizing struct {
	Lots       float64
	RiskAmount float64
	StopPips   float64
}

// Size computes the risk-budget-constrained lot size for one trade.
//
// stopPips = |entry-stop| / pipSize(symbol)
// riskAmount = equity * riskPct/100
// lots = riskAmount / (stopPips * pipValuePerLot(symbol)), floored to the
// minimum tradable increment.
func Size(equity, riskPct, entry, stop float64, symbol string) (Sizing, error) {
	pip := market.PipSize(symbol)
	stopPips := math.Abs(entry-stop) / pip
	if stopPips == 0 {
		return Sizing{}, ErrZeroStopDistance
	}

	riskAmount := equity * riskPct / 100
	lots := riskAmount / (stopPips * market.PipValuePerLot(symbol))

	return Sizing{
		Lots:       FloorLots(lots),
		RiskAmount: riskAmount,
		StopPips:   stopPips,
	}, nil
}

// FloorLots rounds a lot size down to the minimum tradable increment. The
// epsilon keeps exact values like 2.00 from slipping an increment under
// float division.
func FloorLots(lots float64) float64 {
	return math.Floor(lots*100+1e-9) / 100
}
