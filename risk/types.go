package risk

import (
	"errors"
	"fmt"
	"time"
)

// AccountStatus is the lifecycle state of a funded/evaluation account.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
	StatusFailed   AccountStatus = "failed"
	StatusPassed   AccountStatus = "passed"
)

// Direction of a proposed or open trade.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Opposite returns the other side of the market.
func (d Direction) Opposite() Direction {
	if d == Long {
		return Short
	}
	return Long
}

// HoursWindow is an allowed trading window in UTC minutes of day.
// Start > End means the window wraps midnight (an overnight session).
type HoursWindow struct {
	StartMinute int `json:"startMinute" yaml:"start_minute"`
	EndMinute   int `json:"endMinute" yaml:"end_minute"`
}

// Contains reports whether minute-of-day m falls inside the window.
func (w HoursWindow) Contains(m int) bool {
	if w.StartMinute <= w.EndMinute {
		return m >= w.StartMinute && m <= w.EndMinute
	}
	// Overnight window, e.g. 22:00-06:00.
	return m >= w.StartMinute || m <= w.EndMinute
}

// AccountSnapshot is a read-only view of one account at validation time.
// The engine never reads storage itself; callers fetch the snapshot, run
// Validate, and commit post-trade usage under their own serialization.
type AccountSnapshot struct {
	ID     string
	Equity float64

	MaxRiskPerTradePct    float64
	DailyDrawdownLimitPct float64
	MaxDrawdownLimitPct   float64
	DailyDrawdownUsedPct  float64
	MaxDrawdownUsedPct    float64

	Status        AccountStatus
	FailureReason string

	TradingLockedUntil time.Time
	LockReason         string

	NewsTradingAllowed            bool
	WeekendHoldingAllowed         bool
	HedgingAllowed                bool
	MartingaleAllowed             bool
	StopLossRequired              bool
	RequireChecklistBeforeTrading bool
	HardBlockCorrelation          bool

	MaxLotSize               float64
	MaxOpenTrades            int
	MaxOpenLots              float64
	MinStopLossPips          float64
	MaxCorrelatedExposurePct float64
	ConsistencyRulePct       float64
	CurrentProfit            float64

	CurrentRiskMultiplier float64
	ScalingWeek           int
	RecoveryModeActive    bool

	TradingHours          *HoursWindow
	NewsBufferMinutes     int // 0 means the engine default
	ProhibitedInstruments []string
}

// TradeRequest is one proposed trade.
type TradeRequest struct {
	Symbol           string    `json:"symbol"`
	Direction        Direction `json:"direction"`
	Entry            float64   `json:"entryPrice"`
	StopLoss         float64   `json:"stopLoss"`
	TakeProfits      []float64 `json:"takeProfitLevels,omitempty"`
	RequestedRiskPct float64   `json:"requestedRiskPct"`
}

// Validate rejects malformed requests before any rule runs. Callers at
// the transport boundary use it to distinguish bad input from policy
// denials.
func (r TradeRequest) Validate() error {
	switch {
	case r.Symbol == "":
		return errors.New("malformed request: symbol is required")
	case r.Direction != Long && r.Direction != Short:
		return fmt.Errorf("malformed request: direction must be %q or %q", Long, Short)
	case r.Entry <= 0:
		return errors.New("malformed request: entry price must be positive")
	case r.StopLoss < 0:
		return errors.New("malformed request: stop loss cannot be negative")
	case r.RequestedRiskPct <= 0:
		return errors.New("malformed request: requested risk percent must be positive")
	}
	return nil
}

// OpenPosition is a currently open trade on the account.
type OpenPosition struct {
	Symbol    string
	Direction Direction
	Lots      float64
}

// DailyBehaviorStats is per-account, per-calendar-day behavioral state.
// A missing row is the zero value: no losses, checklist not done.
type DailyBehaviorStats struct {
	ConsecutiveLosses int
	LastLossAt        time.Time
	RealizedPL        float64
	ChecklistDone     bool
}

// NewsEvent is one upcoming high-impact calendar event.
type NewsEvent struct {
	Title      string    `json:"title"`
	Currencies []string  `json:"currencies"`
	Time       time.Time `json:"time"`
	Impact     string    `json:"impact"`
}

// MarketContext is the bounded, possibly stale view of upcoming events.
// Unavailable means the provider could not be reached; the news rule
// degrades to a warning rather than blocking or silently passing.
type MarketContext struct {
	Events      []NewsEvent
	Unavailable bool
}

// NewsWindow describes the blackout match exposed on a blocked result.
type NewsWindow struct {
	Event        string    `json:"event"`
	EventTime    time.Time `json:"eventTime"`
	MinutesUntil int       `json:"minutesUntil"`
}

// ValidationResult is the engine's single output.
//
// Invariants: Allowed == (len(Blockers) == 0); AdjustedLotSize is set only
// when Allowed.
type ValidationResult struct {
	Allowed  bool     `json:"allowed"`
	Blockers []string `json:"blockers"`
	Warnings []string `json:"warnings"`

	AdjustedLotSize   float64 `json:"adjustedLotSize,omitempty"`
	MaxAllowedLotSize float64 `json:"maxAllowedLotSize"`
	RiskAmount        float64 `json:"riskAmount"`

	DailyDrawdownRemainingPct float64 `json:"dailyDrawdownRemainingPct"`
	MaxDrawdownRemainingPct   float64 `json:"maxDrawdownRemainingPct"`

	NewsWindow         *NewsWindow `json:"newsWindow,omitempty"`
	RecoveryModeActive bool        `json:"recoveryModeActive,omitempty"`
	CoolingOffActive   bool        `json:"coolingOffActive,omitempty"`
	CoolingOffEndsAt   *time.Time  `json:"coolingOffEndsAt,omitempty"`
	TradingLockedUntil *time.Time  `json:"tradingLockedUntil,omitempty"`
}

// Deny builds the fail-closed result used for input errors, unknown
// accounts and recovered panics: one blocker, zeroed numerics.
func Deny(reason string) ValidationResult {
	return ValidationResult{
		Allowed:  false,
		Blockers: []string{reason},
		Warnings: []string{},
	}
}
