package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/riskgate/pkg/id"
)

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

func (j *SQLite) RecordDecision(ctx context.Context, rec DecisionRecord) error {
	if rec.ID == "" {
		rec.ID = id.New()
	}

	reqJSON, err := json.Marshal(rec.Request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	resJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO decisions
		(id, account_id, symbol, direction, allowed, request_json, result_json, decided_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.AccountID, rec.Request.Symbol, string(rec.Request.Direction),
		rec.Result.Allowed, string(reqJSON), string(resJSON), rec.Timestamp.UTC(),
	)
	return err
}

// ListByAccount returns the account's decisions, newest first.
func (j *SQLite) ListByAccount(ctx context.Context, accountID string, limit int) ([]DecisionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, account_id, request_json, result_json, decided_at
		FROM decisions WHERE account_id = ?
		ORDER BY decided_at DESC LIMIT ?`, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DecisionRecord
	for rows.Next() {
		var (
			rec              DecisionRecord
			reqJSON, resJSON string
		)
		if err := rows.Scan(&rec.ID, &rec.AccountID, &reqJSON, &resJSON, &rec.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(reqJSON), &rec.Request); err != nil {
			return nil, fmt.Errorf("unmarshal request %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(resJSON), &rec.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
