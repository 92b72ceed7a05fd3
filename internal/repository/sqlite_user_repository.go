package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Stewz00/go-phishguard/internal/database"
	"github.com/Stewz00/go-phishguard/internal/interfaces"
	"github.com/Stewz00/go-phishguard/internal/model"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteUserRepository stores users in the local SQLite file.
type SQLiteUserRepository struct {
	db *sql.DB
}

var _ interfaces.UserRepository = (*SQLiteUserRepository)(nil)

func NewSQLiteUserRepository(db *database.SQLite) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db.DB}
}

// CreateUser inserts a user and returns it with its assigned ID.
func (r *SQLiteUserRepository) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	created := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		name, email, passwordHash, created.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Created:      time.Unix(created.Unix(), 0).UTC(),
	}, nil
}

// GetUserByEmail retrieves a user by their email address
func (r *SQLiteUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email))
}

// GetUserByID retrieves a user by ID
func (r *SQLiteUserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (r *SQLiteUserRepository) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var created int64
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Created = time.Unix(created, 0).UTC()
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
