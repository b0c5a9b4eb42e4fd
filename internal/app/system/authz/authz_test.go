package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/ecohub/internal/app/system/auth"
	"github.com/dalemusser/ecohub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	role, name, id, ok := authz.UserCtx(httptest.NewRequest("GET", "/test", nil))
	if ok || role != "guest" || name != "" || id != primitive.NilObjectID {
		t.Errorf("UserCtx() = %q, %q, %v, %v; want guest, \"\", nil, false", role, name, id, ok)
	}
}

func TestUserCtx_MalformedIDFailsClosed(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/test", nil), &auth.SessionUser{
		ID:   "not-an-objectid",
		Role: "admin",
	})
	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for malformed user id")
	}
	if authz.IsAdmin(req) {
		t.Error("malformed id must not grant admin")
	}
}

func TestUserCtx_LowercasesRole(t *testing.T) {
	oid := primitive.NewObjectID()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/test", nil), &auth.SessionUser{
		ID:   oid.Hex(),
		Name: "Ada",
		Role: "ADMIN",
	})
	role, name, id, ok := authz.UserCtx(req)
	if !ok || role != "admin" || name != "Ada" || id != oid {
		t.Errorf("UserCtx() = %q, %q, %v, %v", role, name, id, ok)
	}
}

func TestHasAnyRole(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/test", nil), &auth.SessionUser{
		ID:   primitive.NewObjectID().Hex(),
		Role: "proposer",
	})
	if !authz.HasAnyRole(req, "admin", " Proposer ") {
		t.Error("expected proposer to match")
	}
	if authz.HasAnyRole(req, "admin") {
		t.Error("expected proposer not to match admin")
	}
	if !authz.IsProposer(req) || authz.IsAdmin(req) {
		t.Error("unexpected role helpers result")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/test", nil), "guest") {
		t.Error("anonymous request should have no role")
	}
}
