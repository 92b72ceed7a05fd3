package repository

import (
	"context"
	"errors"

	"github.com/Stewz00/go-phishguard/internal/database"
	"github.com/Stewz00/go-phishguard/internal/interfaces"
	"github.com/Stewz00/go-phishguard/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// PostgresUserRepository implements the UserRepository interface on PostgreSQL
type PostgresUserRepository struct {
	db *database.DB
}

// Verify that PostgresUserRepository implements UserRepository interface
var _ interfaces.UserRepository = (*PostgresUserRepository)(nil)

// NewPostgresUserRepository creates a new UserRepository instance
func NewPostgresUserRepository(db *database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in the database
func (r *PostgresUserRepository) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	user := model.User{PasswordHash: passwordHash}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, created_at`,
		name, email, passwordHash).Scan(&user.ID, &user.Name, &user.Email, &user.Created)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by their email address
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.queryUser(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.queryUser(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) queryUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var user model.User
	err := r.db.Pool.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Created)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
