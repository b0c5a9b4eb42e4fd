// Package campaignpolicy provides the authorization rules for campaigns.
//
// Authorization rules:
//   - Discovery lists show approved campaigns only; an admin may ask for
//     any single status instead
//   - A single campaign is public once approved (also active, completed);
//     its organizer and admins can always see it
//   - Organizers edit their own campaigns while draft or pending; admins
//     edit any campaign at any time
//   - Organizers delete their own campaigns; admins delete any campaign
//   - Status transitions are admin-only (see system/lifecycle)
package campaignpolicy

import (
	"net/http"
	"strings"

	"github.com/dalemusser/ecohub/internal/app/system/authz"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Requester is the caller as seen by campaign rules. The zero value is an
// anonymous caller.
type Requester struct {
	ID   primitive.ObjectID
	Name string
	Role string
}

// Anonymous reports whether no signed-in user made the request.
func (r Requester) Anonymous() bool { return r.ID.IsZero() }

// IsAdmin reports whether the requester holds the admin role.
func (r Requester) IsAdmin() bool { return !r.Anonymous() && r.Role == models.RoleAdmin }

// Owns reports whether the requester organized c.
func (r Requester) Owns(c *models.Campaign) bool {
	return !r.Anonymous() && c != nil && c.OrganizerID == r.ID
}

// RequesterFrom reads the signed-in user from the request context.
func RequesterFrom(r *http.Request) Requester {
	role, name, id, ok := authz.UserCtx(r)
	if !ok {
		return Requester{}
	}
	return Requester{ID: id, Name: name, Role: role}
}

// VisibilityPolicy is the status constraint applied to a discovery query.
// It is computed once per request and consumed by the query builder.
type VisibilityPolicy struct {
	Status string
}

// DefaultVisibility is what every non-admin caller gets.
var DefaultVisibility = VisibilityPolicy{Status: models.StatusApproved}

// ForRequester returns the visibility for a discovery request. Only an
// admin's explicit status replaces the default; any other caller's status
// parameter is ignored. The admin's value is passed through unvalidated
// (an unknown status simply matches nothing).
func ForRequester(req Requester, requestedStatus string) VisibilityPolicy {
	requestedStatus = strings.TrimSpace(requestedStatus)
	if req.IsAdmin() && requestedStatus != "" {
		return VisibilityPolicy{Status: requestedStatus}
	}
	return DefaultVisibility
}

// publicStatuses are visible to anyone on the single-campaign view.
var publicStatuses = map[string]bool{
	models.StatusApproved:  true,
	models.StatusActive:    true,
	models.StatusCompleted: true,
}

// CanView reports whether req may see c. Callers answer NotFound when this
// is false so hidden campaigns do not reveal their existence.
func CanView(req Requester, c *models.Campaign) bool {
	if c == nil {
		return false
	}
	return publicStatuses[c.Status] || req.IsAdmin() || req.Owns(c)
}

// CanDelete reports whether req may delete c.
func CanDelete(req Requester, c *models.Campaign) bool {
	return req.IsAdmin() || req.Owns(c)
}

// CanPropose reports whether req may create campaigns.
func CanPropose(req Requester) bool {
	return !req.Anonymous() && (req.Role == models.RoleProposer || req.Role == models.RoleAdmin)
}
