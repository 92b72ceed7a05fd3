package interfaces

import (
	"context"

	"github.com/Stewz00/go-phishguard/internal/model"
)

// UserRepository defines the interface for user-related database operations.
// Emails are stored and matched in lowercase.
type UserRepository interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// HistoryRepository stores a bounded, most-recent-first classification log per user.
type HistoryRepository interface {
	AppendEntry(ctx context.Context, entry model.HistoryEntry) error
	ListEntries(ctx context.Context, userID int64, scenario string) ([]model.HistoryEntry, error)
}
