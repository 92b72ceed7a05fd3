package repository

import (
	"context"

	"github.com/Stewz00/go-phishguard/internal/classifier"
	"github.com/Stewz00/go-phishguard/internal/database"
	"github.com/Stewz00/go-phishguard/internal/interfaces"
	"github.com/Stewz00/go-phishguard/internal/model"
	"github.com/jackc/pgx/v4"
)

// PostgresHistoryRepository keeps the newest limit entries per user.
type PostgresHistoryRepository struct {
	db    *database.DB
	limit int
}

var _ interfaces.HistoryRepository = (*PostgresHistoryRepository)(nil)

func NewPostgresHistoryRepository(db *database.DB, limit int) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db, limit: normalizeLimit(limit)}
}

// AppendEntry stores entry and evicts the user's oldest entries beyond the limit.
func (r *PostgresHistoryRepository) AppendEntry(ctx context.Context, e model.HistoryEntry) error {
	return r.db.Pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO history (user_id, scenario, source, text, label, score, explanation, classified_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.UserID, e.Scenario, e.Source, e.Text, string(e.Label), e.Score, e.Explanation, e.Timestamp); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`DELETE FROM history
			 WHERE user_id = $1 AND id NOT IN (
			   SELECT id FROM history WHERE user_id = $1 ORDER BY id DESC LIMIT $2
			 )`,
			e.UserID, r.limit)
		return err
	})
}

// ListEntries returns the user's entries, newest first, optionally filtered by scenario.
func (r *PostgresHistoryRepository) ListEntries(ctx context.Context, userID int64, scenario string) ([]model.HistoryEntry, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT user_id, scenario, source, text, label, score, explanation, classified_at
		 FROM history
		 WHERE user_id = $1 AND ($2 = '' OR scenario = $2)
		 ORDER BY id DESC`,
		userID, scenario)
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
