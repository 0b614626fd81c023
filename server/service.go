package server

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/riskgate/journal"
	"github.com/rustyeddy/riskgate/risk"
	"github.com/rustyeddy/riskgate/store"
)

// Service wires the engine to its collaborators: account/stats stores, the
// audit journal and metrics. It owns the per-account serialization the
// engine itself deliberately does not.
type Service struct {
	Engine   *risk.Engine
	Accounts store.AccountStore
	Stats    store.StatsStore
	Audit    journal.Journal
	Metrics  *Metrics

	locks *accountLocks
}

func NewService(engine *risk.Engine, accounts store.AccountStore, stats store.StatsStore,
	audit journal.Journal, metrics *Metrics) *Service {
	return &Service{
		Engine:   engine,
		Accounts: accounts,
		Stats:    stats,
		Audit:    audit,
		Metrics:  metrics,
		locks:    newAccountLocks(),
	}
}

// ValidateTrade runs the full read-snapshot -> validate -> audit sequence
// under the account's lock. The returned error is store.ErrAccountNotFound
// for unknown accounts, or the lookup failure for broken storage; both
// deny. Policy denials are not errors.
func (s *Service) ValidateTrade(ctx context.Context, accountID string, req risk.TradeRequest) (risk.ValidationResult, error) {
	start := time.Now()

	unlock := s.locks.acquire(accountID)
	defer unlock()

	acct, err := s.Accounts.GetAccount(ctx, accountID)
	if err != nil {
		return risk.ValidationResult{}, err
	}

	positions, err := s.Accounts.ListOpenPositions(ctx, accountID)
	if err != nil {
		return risk.ValidationResult{}, err
	}

	var statsWarning string
	stats, err := s.Stats.GetDailyStats(ctx, accountID, s.Engine.Now())
	if err != nil {
		// Degraded dependency: assume zero losses, never silently pass.
		stats = risk.DailyBehaviorStats{}
		statsWarning = "could not verify daily stats: assuming no losses today"
		log.Warn().Err(err).Str("account", accountID).Msg("daily stats lookup failed")
	}

	result := s.Engine.Validate(ctx, acct, req, positions, stats)
	if statsWarning != "" {
		result.Warnings = append(result.Warnings, statsWarning)
	}

	s.audit(ctx, accountID, req, result)
	s.Metrics.observe(result.Allowed, time.Since(start).Seconds())

	log.Info().
		Str("account", accountID).
		Str("symbol", req.Symbol).
		Str("direction", string(req.Direction)).
		Bool("allowed", result.Allowed).
		Int("blockers", len(result.Blockers)).
		Int("warnings", len(result.Warnings)).
		Msg("trade validated")

	return result, nil
}

// audit appends the decision record. Write failures are logged and never
// surface to the caller.
func (s *Service) audit(ctx context.Context, accountID string, req risk.TradeRequest, result risk.ValidationResult) {
	if s.Audit == nil {
		return
	}
	rec := journal.DecisionRecord{
		AccountID: accountID,
		Request:   req,
		Result:    result,
		Timestamp: s.Engine.Now().UTC(),
	}
	if err := s.Audit.RecordDecision(ctx, rec); err != nil {
		log.Error().Err(err).Str("account", accountID).Msg("audit write failed")
	}
}
