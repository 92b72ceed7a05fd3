package test

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/Stewz00/go-phishguard/internal/classifier"
	"github.com/Stewz00/go-phishguard/internal/interfaces"
	"github.com/Stewz00/go-phishguard/internal/model"
	"github.com/Stewz00/go-phishguard/internal/repository"
)

// MockUserRepository implements interfaces.UserRepository in memory
type MockUserRepository struct {
	mu     sync.Mutex
	users  map[string]*model.User
	nextID int64
}

// Verify that MockUserRepository implements UserRepository interface
var _ interfaces.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*model.User)}
}

// CreateUser mocks creating a new user; emails collide case-insensitively like the real stores
func (r *MockUserRepository) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := r.users[key]; exists {
		return nil, repository.ErrDuplicateEmail
	}

	r.nextID++
	user := &model.User{
		ID:           r.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Created:      time.Now().UTC(),
	}
	r.users[key] = user
	return user, nil
}

// GetUserByEmail mocks retrieving a user by email
func (r *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[strings.ToLower(email)]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// GetUserByID mocks retrieving a user by ID
func (r *MockUserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// StubExtractor returns a fixed OCR result and counts calls.
type StubExtractor struct {
	Text  string
	Err   error
	Calls int
}

var _ interfaces.TextExtractor = (*StubExtractor)(nil)

func (e *StubExtractor) ExtractText(ctx context.Context, img io.Reader) (string, error) {
	e.Calls++
	if _, err := io.Copy(io.Discard, img); err != nil {
		return "", err
	}
	return e.Text, e.Err
}

// FailingHistoryRepository rejects every call with Err.
type FailingHistoryRepository struct {
	Err error
}

var _ interfaces.HistoryRepository = (*FailingHistoryRepository)(nil)

func (r *FailingHistoryRepository) AppendEntry(context.Context, model.HistoryEntry) error {
	return r.Err
}

func (r *FailingHistoryRepository) ListEntries(context.Context, int64, string) ([]model.HistoryEntry, error) {
	return nil, r.Err
}

// SpyClassifier delegates to Inner and counts calls.
type SpyClassifier struct {
	Inner classifier.Classifier
	mu    sync.Mutex
	calls int
}

func (c *SpyClassifier) Classify(text string) classifier.Result {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.Inner.Classify(text)
}

// Calls reports how many times Classify ran.
func (c *SpyClassifier) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
