// Package lifecycle is the campaign status state machine.
//
//	pending ──► approved ──► active ──► completed
//	   │
//	   └──────► rejected
//
// Every transition is admin-only. rejected and completed are terminal;
// draft has no outgoing edge either (nothing creates drafts today, it is
// kept so stored drafts stay valid). Organizers may edit content while a
// campaign is draft or pending.
package lifecycle

import (
	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/domain/models"
)

// edges is the transition graph.
var edges = map[string][]string{
	models.StatusPending:  {models.StatusApproved, models.StatusRejected},
	models.StatusApproved: {models.StatusActive},
	models.StatusActive:   {models.StatusCompleted},
}

// editableByOrganizer are the states in which the owner may edit content.
var editableByOrganizer = []string{models.StatusDraft, models.StatusPending}

// InitialStatus is the status of a new submission: admins self-approve,
// everyone else waits for review.
func InitialStatus(role string) string {
	if role == models.RoleAdmin {
		return models.StatusApproved
	}
	return models.StatusPending
}

// Allowed reports whether from → to is an edge of the graph.
func Allowed(from, to string) bool {
	for _, s := range edges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Next lists the statuses reachable from status in one step.
func Next(status string) []string {
	out := make([]string, len(edges[status]))
	copy(out, edges[status])
	return out
}

// Terminal reports whether status has no outgoing transition.
func Terminal(status string) bool {
	return len(edges[status]) == 0
}

// OrganizerMayEdit reports whether an owner may still edit content in status.
func OrganizerMayEdit(status string) bool {
	for _, s := range editableByOrganizer {
		if s == status {
			return true
		}
	}
	return false
}

// CanEdit reports whether req may edit c's content right now.
func CanEdit(req campaignpolicy.Requester, c *models.Campaign) bool {
	if req.IsAdmin() {
		return true
	}
	return req.Owns(c) && OrganizerMayEdit(c.Status)
}
