// store/schema.go
package store

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	equity REAL NOT NULL,
	max_risk_per_trade_pct REAL NOT NULL,
	daily_drawdown_limit_pct REAL NOT NULL,
	max_drawdown_limit_pct REAL NOT NULL,
	daily_drawdown_used_pct REAL NOT NULL DEFAULT 0,
	max_drawdown_used_pct REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	failure_reason TEXT NOT NULL DEFAULT '',
	locked_until DATETIME,
	lock_reason TEXT NOT NULL DEFAULT '',
	news_trading_allowed INTEGER NOT NULL DEFAULT 0,
	weekend_holding_allowed INTEGER NOT NULL DEFAULT 0,
	hedging_allowed INTEGER NOT NULL DEFAULT 0,
	martingale_allowed INTEGER NOT NULL DEFAULT 0,
	stop_loss_required INTEGER NOT NULL DEFAULT 0,
	require_checklist INTEGER NOT NULL DEFAULT 0,
	hard_block_correlation INTEGER NOT NULL DEFAULT 0,
	max_lot_size REAL NOT NULL DEFAULT 0,
	max_open_trades INTEGER NOT NULL DEFAULT 0,
	max_open_lots REAL NOT NULL DEFAULT 0,
	min_stop_loss_pips REAL NOT NULL DEFAULT 0,
	max_correlated_exposure_pct REAL NOT NULL DEFAULT 0,
	consistency_rule_pct REAL NOT NULL DEFAULT 0,
	current_profit REAL NOT NULL DEFAULT 0,
	risk_multiplier REAL NOT NULL DEFAULT 1,
	scaling_week INTEGER NOT NULL DEFAULT 0,
	recovery_mode INTEGER NOT NULL DEFAULT 0,
	hours_start_minute INTEGER,
	hours_end_minute INTEGER,
	news_buffer_minutes INTEGER NOT NULL DEFAULT 0,
	prohibited_instruments TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS positions (
	account_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	lots REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_account ON positions(account_id);

CREATE TABLE IF NOT EXISTS daily_stats (
	account_id TEXT NOT NULL,
	day TEXT NOT NULL,
	consecutive_losses INTEGER NOT NULL DEFAULT 0,
	last_loss_at DATETIME,
	realized_pl REAL NOT NULL DEFAULT 0,
	checklist_done INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (account_id, day)
);
`
