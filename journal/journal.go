// journal/journal.go
package journal

import (
	"context"
	"time"

	"github.com/rustyeddy/riskgate/risk"
)

// DecisionRecord is one validated trade request and its outcome. Records
// are append-only and never mutated after creation.
type DecisionRecord struct {
	ID        string
	AccountID string
	Request   risk.TradeRequest
	Result    risk.ValidationResult
	Timestamp time.Time
}

// Journal is the audit sink. A failed write must never block the decision
// being returned to the caller; the service logs and continues.
type Journal interface {
	RecordDecision(ctx context.Context, rec DecisionRecord) error
	Close() error
}

// Nop discards records. Used by the one-shot CLI.
type Nop struct{}

func (Nop) RecordDecision(context.Context, DecisionRecord) error { return nil }
func (Nop) Close() error                                         { return nil }
