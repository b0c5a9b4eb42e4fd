package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/ecohub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestGenerateKey(t *testing.T) {
	a, b := auth.GenerateKey(), auth.GenerateKey()
	if len(a) < 32 {
		t.Errorf("generated key too short: %d", len(a))
	}
	if a == b {
		t.Error("expected distinct keys")
	}
}

func TestRequireSignedIn_NoUser_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(okHandler()).ServeHTTP(rec, httptest.NewRequest("POST", "/campaigns/x/join", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct == "" {
		t.Error("expected JSON content type")
	}
}

func TestRequireSignedIn_WithUser_Passes(t *testing.T) {
	sm := newTestSessionManager(t)
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "abc", Role: "member"})
	rec := httptest.NewRecorder()

	sm.RequireSignedIn(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	sm := newTestSessionManager(t)
	h := sm.RequireRole("proposer", "admin")(okHandler())

	tests := []struct {
		name string
		user *auth.SessionUser
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", &auth.SessionUser{ID: "1", Role: "member"}, http.StatusForbidden},
		{"guest", &auth.SessionUser{ID: "1", Role: "guest"}, http.StatusForbidden},
		{"proposer", &auth.SessionUser{ID: "1", Role: "proposer"}, http.StatusOK},
		{"admin mixed case", &auth.SessionUser{ID: "1", Role: "Admin"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/campaigns", nil)
			if tt.user != nil {
				req = auth.WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestLoadSessionUser_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	// Write a session cookie the way the sign-in service would.
	saveRec := httptest.NewRecorder()
	err := sm.SaveUser(saveRec, httptest.NewRequest("GET", "/", nil), auth.SessionUser{
		ID:   "64b7f0c2a1b2c3d4e5f60718",
		Name: "Ada",
		Role: "Proposer",
	})
	if err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	cookies := saveRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	var got *auth.SessionUser
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	req := httptest.NewRequest("GET", "/campaigns", nil)
	req.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != "64b7f0c2a1b2c3d4e5f60718" || got.Name != "Ada" || got.Role != "proposer" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestLoadSessionUser_TamperedCookieIsAnonymous(t *testing.T) {
	sm := newTestSessionManager(t)

	var signedIn bool
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, signedIn = auth.CurrentUser(r)
	}))

	req := httptest.NewRequest("GET", "/campaigns", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "forged-value"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if signedIn {
		t.Error("tampered cookie must not sign the caller in")
	}
}
