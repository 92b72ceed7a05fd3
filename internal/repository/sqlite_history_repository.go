package repository

import (
	"context"
	"database/sql"

	"github.com/Stewz00/go-phishguard/internal/classifier"
	"github.com/Stewz00/go-phishguard/internal/database"
	"github.com/Stewz00/go-phishguard/internal/interfaces"
	"github.com/Stewz00/go-phishguard/internal/model"
)

// SQLiteHistoryRepository keeps the newest limit entries per user.
type SQLiteHistoryRepository struct {
	db    *sql.DB
	limit int
}

var _ interfaces.HistoryRepository = (*SQLiteHistoryRepository)(nil)

func NewSQLiteHistoryRepository(db *database.SQLite, limit int) *SQLiteHistoryRepository {
	return &SQLiteHistoryRepository{db: db.DB, limit: normalizeLimit(limit)}
}

// AppendEntry stores entry and evicts the user's oldest entries beyond the limit.
func (r *SQLiteHistoryRepository) AppendEntry(ctx context.Context, e model.HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO history (user_id, scenario, source, text, label, score, explanation, classified_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Scenario, e.Source, e.Text, string(e.Label), e.Score, e.Explanation, e.Timestamp); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
DELETE FROM history
WHERE user_id = ? AND id NOT IN (
  SELECT id FROM history WHERE user_id = ? ORDER BY id DESC LIMIT ?
)`, e.UserID, e.UserID, r.limit); err != nil {
		return err
	}

	return tx.Commit()
}

// ListEntries returns the user's entries, newest first, optionally filtered by scenario.
func (r *SQLiteHistoryRepository) ListEntries(ctx context.Context, userID int64, scenario string) ([]model.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, scenario, source, text, label, score, explanation, classified_at
FROM history
WHERE user_id = ? AND (? = '' OR scenario = ?)
ORDER BY id DESC`, userID, scenario, scenario)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		var e model.HistoryEntry
		var label string
		if err := rows.Scan(&e.UserID, &e.Scenario, &e.Source, &e.Text, &label, &e.Score, &e.Explanation, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Label = classifier.Label(label)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
