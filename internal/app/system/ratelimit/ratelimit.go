// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/ecohub/internal/app/system/auth"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/go-chi/httprate"
)

// Config describes one limiter. A zero Requests disables limiting.
type Config struct {
	Requests int
	Window   time.Duration
	Message  string
}

// Limit returns middleware that allows cfg.Requests per cfg.Window per
// caller. Signed-in callers are keyed by user id so one account cannot dodge
// the limit by switching networks; everyone else is keyed by IP.
func Limit(cfg Config) func(http.Handler) http.Handler {
	if cfg.Requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	msg := cfg.Message
	if msg == "" {
		msg = "Too many requests. Please wait and try again."
	}
	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(KeyByUserOrIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respond.Fail(w, http.StatusTooManyRequests, msg)
		}),
	)
}

// KeyByUserOrIP keys on the session user id, falling back to the client IP.
func KeyByUserOrIP(r *http.Request) (string, error) {
	if u, ok := auth.CurrentUser(r); ok && u.ID != "" {
		return "user:" + u.ID, nil
	}
	return httprate.KeyByIP(r)
}

// ClientIP extracts the client IP from an HTTP request. Forwarding headers
// win over RemoteAddr; the first X-Forwarded-For entry is the client.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
