// Package store is the account/position/stats persistence consumed by the
// validation service. The engine itself never touches it; callers fetch a
// snapshot, validate, then commit usage under per-account serialization.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rustyeddy/riskgate/risk"
)

// ErrAccountNotFound distinguishes "no such account" from an account with
// zero open positions or an infrastructure failure.
var ErrAccountNotFound = errors.New("account not found")

// AccountStore reads account snapshots and open positions.
type AccountStore interface {
	GetAccount(ctx context.Context, id string) (risk.AccountSnapshot, error)
	ListOpenPositions(ctx context.Context, id string) ([]risk.OpenPosition, error)
}

// StatsStore reads per-account, per-day behavioral stats. A missing row is
// returned as the zero value with a nil error.
type StatsStore interface {
	GetDailyStats(ctx context.Context, accountID string, day time.Time) (risk.DailyBehaviorStats, error)
}

// DayKey is the calendar-day key used by the stats table, UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
