// internal/app/system/auth/auth.go
//
// Package auth reads the signed session cookie issued by the sign-in
// service and exposes the user to handlers. Sign-in itself (passwords,
// OAuth, token issuance) lives in that service; this package only
// verifies and decodes the cookie.
package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	DefaultSessionName = "ecohub-session"

	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
	userName  = "user_name"
	userRole  = "user_role"
)

// SessionUser is what we read from the session & inject into r.Context().
type SessionUser struct {
	ID   string
	Name string
	Role string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects u directly, bypassing the cookie. Tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// SessionManager owns the cookie store.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	logger *zap.Logger
}

// NewSessionManager builds a cookie store shared with the sign-in service.
// sessionKey must match the key that service signs cookies with.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	// Secure cookies may cross sites (the sign-in service runs on its own
	// host); plain-http dev stays Lax.
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, logger: logger}, nil
}

// GenerateKey returns a random session key for local development when none
// is configured. Cookies signed with it are not readable after a restart.
func GenerateKey() string {
	return base64.RawURLEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
}

// LoadSessionUser injects the user into context if the cookie says they are
// signed in. A missing, expired or tampered cookie means anonymous.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			var cookieErr securecookie.Error
			if errors.As(err, &cookieErr) && cookieErr.IsDecode() {
				m.logger.Debug("ignoring undecodable session cookie", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:   getString(sess, userIDKey),
				Name: getString(sess, userName),
				Role: strings.ToLower(getString(sess, userRole)),
			}
			if u.ID != "" {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SaveUser writes a signed-in session for u. The sign-in service does this
// in production; here it backs integration tests and local tooling.
func (m *SessionManager) SaveUser(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userName] = u.Name
	sess.Values[userRole] = u.Role
	return sess.Save(r, w)
}

// RequireSignedIn rejects anonymous callers with 401 before the handler runs.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return RequireSignedIn(next)
}

// RequireRole rejects callers without one of the allowed roles.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return RequireRole(allowed...)
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			respond.Fail(w, http.StatusUnauthorized, "Please sign in to continue.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the user in context holds one of the allowed roles.
// Anonymous callers get 401, signed-in callers with another role get 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Fail(w, http.StatusUnauthorized, "Please sign in to continue.")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				respond.Fail(w, http.StatusForbidden, "You don't have permission to do that.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
