package repository

import (
	"context"
	"sync"

	"github.com/Stewz00/go-phishguard/internal/interfaces"
	"github.com/Stewz00/go-phishguard/internal/model"
)

// MemoryHistoryRepository is a process-local history; entries are lost on restart.
type MemoryHistoryRepository struct {
	mu      sync.RWMutex
	limit   int
	entries map[int64][]model.HistoryEntry
}

var _ interfaces.HistoryRepository = (*MemoryHistoryRepository)(nil)

func NewMemoryHistoryRepository(limit int) *MemoryHistoryRepository {
	return &MemoryHistoryRepository{
		limit:   normalizeLimit(limit),
		entries: make(map[int64][]model.HistoryEntry),
	}
}

func (r *MemoryHistoryRepository) AppendEntry(_ context.Context, e model.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := append([]model.HistoryEntry{e}, r.entries[e.UserID]...)
	if len(list) > r.limit {
		list = list[:r.limit]
	}
	r.entries[e.UserID] = list
	return nil
}

func (r *MemoryHistoryRepository) ListEntries(_ context.Context, userID int64, scenario string) ([]model.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.HistoryEntry{}
	for _, e := range r.entries[userID] {
		if scenario == "" || e.Scenario == scenario {
			out = append(out, e)
		}
	}
	return out, nil
}
