package middleware

import (
	"net/http"
	"time"

	"github.com/Stewz00/go-phishguard/internal/httputil"
	"github.com/go-chi/httprate"
)

// RateLimiter creates a middleware that limits requests based on IP address
// It allows 100 requests per minute per IP address for regular endpoints
func RateLimiter() func(http.Handler) http.Handler {
	return limitByIP(100, time.Minute)
}

// StrictRateLimiter creates a more restrictive rate limiter for sensitive endpoints
// like login and registration (10 requests per minute per IP)
func StrictRateLimiter() func(http.Handler) http.Handler {
	return limitByIP(10, time.Minute)
}

func limitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondError(w, httputil.CodeRateLimited, http.StatusTooManyRequests)
		}),
	)
}
