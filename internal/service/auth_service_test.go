package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Stewz00/go-phishguard/internal/test"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestAuthService() *AuthService {
	return NewAuthService(test.NewMockUserRepository(), testSecret, WithBcryptCost(bcrypt.MinCost))
}

func TestRegisterUser(t *testing.T) {
	authService := newTestAuthService()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid registration",
			userName: "Test User",
			email:    "Test@Example.com",
			password: "password123",
		},
		{
			name:     "duplicate email",
			userName: "Someone Else",
			email:    "test@example.com",
			password: "password123",
			wantErr:  ErrEmailInUse,
		},
		{
			name:     "duplicate email differing in case",
			userName: "Someone Else",
			email:    "  TEST@EXAMPLE.COM ",
			password: "password123",
			wantErr:  ErrEmailInUse,
		},
		{
			name:     "missing name",
			userName: "   ",
			email:    "other@example.com",
			password: "password123",
			wantErr:  ErrMissingFields,
		},
		{
			name:     "missing password",
			userName: "Other",
			email:    "other@example.com",
			wantErr:  ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.RegisterUser(context.Background(), tt.userName, tt.email, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Token == "" {
				t.Error("expected token but got empty string")
			}
			if result.User.Email != "test@example.com" {
				t.Errorf("got email %q, want normalized lowercase", result.User.Email)
			}
			if result.User.PasswordHash == tt.password {
				t.Error("password stored in plain text")
			}
		})
	}
}

func TestLoginUser(t *testing.T) {
	authService := newTestAuthService()

	email := "test@example.com"
	password := "password123"
	registered, err := authService.RegisterUser(context.Background(), "Test", email, password)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid login",
			email:    email,
			password: password,
		},
		{
			name:     "email is case-insensitive",
			email:    "TEST@example.COM",
			password: password,
		},
		{
			name:     "invalid password",
			email:    email,
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "non-existent user",
			email:    "nonexistent@example.com",
			password: password,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:    "empty password",
			email:   email,
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.LoginUser(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Token == "" {
				t.Error("expected token but got empty string")
			}
			if result.User.ID != registered.User.ID {
				t.Errorf("got user %d, want %d", result.User.ID, registered.User.ID)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	authService := newTestAuthService()

	registered, err := authService.RegisterUser(context.Background(), "Test", "test@example.com", "password123")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-1 * time.Hour).Unix(),
		"sub": "1",
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testSecret))

	foreignToken, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": "1",
	}).SignedString([]byte("other-secret"))

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
	}).SignedString([]byte(testSecret))

	badSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": "not-a-number",
	}).SignedString([]byte(testSecret))

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": "1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	parts := strings.Split(registered.Token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid token", token: registered.Token},
		{name: "expired token", token: expiredTokenString, wantErr: ErrTokenExpired},
		{name: "garbage", token: "invalid.token.string", wantErr: ErrInvalidToken},
		{name: "tampered payload", token: tampered, wantErr: ErrInvalidToken},
		{name: "wrong secret", token: foreignToken, wantErr: ErrInvalidToken},
		{name: "missing expiry", token: noExpiry, wantErr: ErrInvalidToken},
		{name: "non-numeric subject", token: badSubject, wantErr: ErrInvalidToken},
		{name: "alg none", token: unsigned, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := authService.ValidateToken(tt.token)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			id, err := claims.UserID()
			if err != nil || id != registered.User.ID {
				t.Errorf("got subject %q, want %d", claims.Subject, registered.User.ID)
			}
			if claims.Email != "test@example.com" {
				t.Errorf("got email %q", claims.Email)
			}
		})
	}
}

func TestIssueToken_ExpiresAfterSevenDays(t *testing.T) {
	authService := newTestAuthService()
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	authService.now = func() time.Time { return issued }

	registered, err := authService.RegisterUser(context.Background(), "Test", "ttl@example.com", "pw")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	claims, err := authService.ValidateToken(registered.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != 7*24*time.Hour {
		t.Errorf("got lifetime %v, want 168h", got)
	}
	if claims.ID == "" {
		t.Error("expected jti")
	}

	authService.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) }
	if _, err := authService.ValidateToken(registered.Token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("got error %v, want %v", err, ErrTokenExpired)
	}
}

func TestGetUser(t *testing.T) {
	authService := newTestAuthService()

	registered, err := authService.RegisterUser(context.Background(), "Test", "me@example.com", "pw")
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	user, err := authService.GetUser(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.Name != "Test" || user.Email != "me@example.com" {
		t.Errorf("unexpected user %+v", user)
	}

	if _, err := authService.GetUser(context.Background(), 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got error %v, want %v", err, ErrUserNotFound)
	}
}
