package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/riskgate/risk"
)

// SQLite implements AccountStore and StatsStore over one sqlite database.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) GetAccount(ctx context.Context, id string) (risk.AccountSnapshot, error) {
	var (
		acct       risk.AccountSnapshot
		status     string
		locked     sql.NullTime
		hoursStart sql.NullInt64
		hoursEnd   sql.NullInt64
		prohibited string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, equity, max_risk_per_trade_pct,
			daily_drawdown_limit_pct, max_drawdown_limit_pct,
			daily_drawdown_used_pct, max_drawdown_used_pct,
			status, failure_reason, locked_until, lock_reason,
			news_trading_allowed, weekend_holding_allowed, hedging_allowed,
			martingale_allowed, stop_loss_required, require_checklist,
			hard_block_correlation,
			max_lot_size, max_open_trades, max_open_lots, min_stop_loss_pips,
			max_correlated_exposure_pct, consistency_rule_pct, current_profit,
			risk_multiplier, scaling_week, recovery_mode,
			hours_start_minute, hours_end_minute, news_buffer_minutes,
			prohibited_instruments
		FROM accounts WHERE id = ?`, id).Scan(
		&acct.ID, &acct.Equity, &acct.MaxRiskPerTradePct,
		&acct.DailyDrawdownLimitPct, &acct.MaxDrawdownLimitPct,
		&acct.DailyDrawdownUsedPct, &acct.MaxDrawdownUsedPct,
		&status, &acct.FailureReason, &locked, &acct.LockReason,
		&acct.NewsTradingAllowed, &acct.WeekendHoldingAllowed, &acct.HedgingAllowed,
		&acct.MartingaleAllowed, &acct.StopLossRequired, &acct.RequireChecklistBeforeTrading,
		&acct.HardBlockCorrelation,
		&acct.MaxLotSize, &acct.MaxOpenTrades, &acct.MaxOpenLots, &acct.MinStopLossPips,
		&acct.MaxCorrelatedExposurePct, &acct.ConsistencyRulePct, &acct.CurrentProfit,
		&acct.CurrentRiskMultiplier, &acct.ScalingWeek, &acct.RecoveryModeActive,
		&hoursStart, &hoursEnd, &acct.NewsBufferMinutes,
		&prohibited,
	)
	if err == sql.ErrNoRows {
		return risk.AccountSnapshot{}, ErrAccountNotFound
	}
	if err != nil {
		return risk.AccountSnapshot{}, err
	}

	acct.Status = risk.AccountStatus(status)
	if locked.Valid {
		acct.TradingLockedUntil = locked.Time.UTC()
	}
	if hoursStart.Valid && hoursEnd.Valid {
		acct.TradingHours = &risk.HoursWindow{
			StartMinute: int(hoursStart.Int64),
			EndMinute:   int(hoursEnd.Int64),
		}
	}
	if prohibited != "" {
		acct.ProhibitedInstruments = strings.Split(prohibited, ",")
	}

	return acct, nil
}

func (s *SQLite) ListOpenPositions(ctx context.Context, id string) ([]risk.OpenPosition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, direction, lots FROM positions WHERE account_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []risk.OpenPosition
	for rows.Next() {
		var (
			p   risk.OpenPosition
			dir string
		)
		if err := rows.Scan(&p.Symbol, &dir, &p.Lots); err != nil {
			return nil, err
		}
		p.Direction = risk.Direction(dir)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLite) GetDailyStats(ctx context.Context, accountID string, day time.Time) (risk.DailyBehaviorStats, error) {
	var (
		stats    risk.DailyBehaviorStats
		lastLoss sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT consecutive_losses, last_loss_at, realized_pl, checklist_done
		FROM daily_stats WHERE account_id = ? AND day = ?`,
		accountID, DayKey(day)).Scan(
		&stats.ConsecutiveLosses, &lastLoss, &stats.RealizedPL, &stats.ChecklistDone,
	)
	if err == sql.ErrNoRows {
		return risk.DailyBehaviorStats{}, nil
	}
	if err != nil {
		return risk.DailyBehaviorStats{}, err
	}

	if lastLoss.Valid {
		stats.LastLossAt = lastLoss.Time.UTC()
	}
	return stats, nil
}

// SaveAccount inserts or replaces an account row. Used by seeding and tests.
func (s *SQLite) SaveAccount(ctx context.Context, acct risk.AccountSnapshot) error {
	var locked any
	if !acct.TradingLockedUntil.IsZero() {
		locked = acct.TradingLockedUntil.UTC()
	}

	var hoursStart, hoursEnd any
	if acct.TradingHours != nil {
		hoursStart = acct.TradingHours.StartMinute
		hoursEnd = acct.TradingHours.EndMinute
	}

	multiplier := acct.CurrentRiskMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO accounts (
			id, equity, max_risk_per_trade_pct,
			daily_drawdown_limit_pct, max_drawdown_limit_pct,
			daily_drawdown_used_pct, max_drawdown_used_pct,
			status, failure_reason, locked_until, lock_reason,
			news_trading_allowed, weekend_holding_allowed, hedging_allowed,
			martingale_allowed, stop_loss_required, require_checklist,
			hard_block_correlation,
			max_lot_size, max_open_trades, max_open_lots, min_stop_loss_pips,
			max_correlated_exposure_pct, consistency_rule_pct, current_profit,
			risk_multiplier, scaling_week, recovery_mode,
			hours_start_minute, hours_end_minute, news_buffer_minutes,
			prohibited_instruments
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		acct.ID, acct.Equity, acct.MaxRiskPerTradePct,
		acct.DailyDrawdownLimitPct, acct.MaxDrawdownLimitPct,
		acct.DailyDrawdownUsedPct, acct.MaxDrawdownUsedPct,
		string(acct.Status), acct.FailureReason, locked, acct.LockReason,
		acct.NewsTradingAllowed, acct.WeekendHoldingAllowed, acct.HedgingAllowed,
		acct.MartingaleAllowed, acct.StopLossRequired, acct.RequireChecklistBeforeTrading,
		acct.HardBlockCorrelation,
		acct.MaxLotSize, acct.MaxOpenTrades, acct.MaxOpenLots, acct.MinStopLossPips,
		acct.MaxCorrelatedExposurePct, acct.ConsistencyRulePct, acct.CurrentProfit,
		multiplier, acct.ScalingWeek, acct.RecoveryModeActive,
		hoursStart, hoursEnd, acct.NewsBufferMinutes,
		strings.Join(acct.ProhibitedInstruments, ","),
	)
	return err
}

// AddPosition appends one open position for the account.
func (s *SQLite) AddPosition(ctx context.Context, accountID string, p risk.OpenPosition) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO positions (account_id, symbol, direction, lots) VALUES (?,?,?,?)`,
		accountID, p.Symbol, string(p.Direction), p.Lots)
	return err
}

// PutDailyStats inserts or replaces the stats row for (account, day).
func (s *SQLite) PutDailyStats(ctx context.Context, accountID string, day time.Time, stats risk.DailyBehaviorStats) error {
	var lastLoss any
	if !stats.LastLossAt.IsZero() {
		lastLoss = stats.LastLossAt.UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO daily_stats
		(account_id, day, consecutive_losses, last_loss_at, realized_pl, checklist_done)
		VALUES (?,?,?,?,?,?)`,
		accountID, DayKey(day), stats.ConsecutiveLosses, lastLoss, stats.RealizedPL, stats.ChecklistDone)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
