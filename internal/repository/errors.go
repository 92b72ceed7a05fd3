package repository

import "errors"

// Common errors that can be returned by the repository
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// DefaultHistoryLimit is the number of entries kept per user when none is configured.
const DefaultHistoryLimit = 100

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}
