package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Stewz00/go-phishguard/internal/interfaces"
	"github.com/Stewz00/go-phishguard/internal/model"
	"github.com/redis/go-redis/v9"
)

// RedisHistoryRepository keeps each user's history in a capped Redis list,
// newest at the head.
type RedisHistoryRepository struct {
	client *redis.Client
	prefix string
	limit  int
}

var _ interfaces.HistoryRepository = (*RedisHistoryRepository)(nil)

func NewRedisHistoryRepository(client *redis.Client, limit int) *RedisHistoryRepository {
	return &RedisHistoryRepository{client: client, prefix: "phishguard:history:", limit: normalizeLimit(limit)}
}

func (r *RedisHistoryRepository) key(userID int64) string {
	return fmt.Sprintf("%s%d", r.prefix, userID)
}

// AppendEntry pushes entry and trims the list to the limit atomically.
func (r *RedisHistoryRepository) AppendEntry(ctx context.Context, e model.HistoryEntry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	key := r.key(e.UserID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, int64(r.limit-1))
		return nil
	})
	return err
}

// ListEntries returns the user's entries, newest first, optionally filtered by scenario.
func (r *RedisHistoryRepository) ListEntries(ctx context.Context, userID int64, scenario string) ([]model.HistoryEntry, error) {
	raw, err := r.client.LRange(ctx, r.key(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var e model.HistoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		if scenario != "" && e.Scenario != scenario {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
