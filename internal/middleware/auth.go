package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Stewz00/go-phishguard/internal/httputil"
	"github.com/Stewz00/go-phishguard/internal/logging"
	"github.com/Stewz00/go-phishguard/internal/service"
)

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*service.Claims, error)
}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID int64
	Email  string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller set by RequireAuth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, httputil.CodeMissingToken, http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, service.ErrTokenExpired) {
					reason = "expired"
				}
				logging.FromContext(r.Context()).Debug("token rejected", "reason", reason)
				httputil.RespondError(w, httputil.CodeInvalidToken, http.StatusUnauthorized)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				httputil.RespondError(w, httputil.CodeInvalidToken, http.StatusUnauthorized)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: userID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
