package campaignpolicy_test

import (
	"testing"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requester(role string) campaignpolicy.Requester {
	return campaignpolicy.Requester{ID: primitive.NewObjectID(), Name: role, Role: role}
}

func TestForRequester(t *testing.T) {
	tests := []struct {
		name   string
		req    campaignpolicy.Requester
		status string
		want   string
	}{
		{"anonymous default", campaignpolicy.Requester{}, "", models.StatusApproved},
		{"anonymous cannot escalate", campaignpolicy.Requester{}, models.StatusPending, models.StatusApproved},
		{"member cannot escalate", requester(models.RoleMember), models.StatusRejected, models.StatusApproved},
		{"proposer cannot escalate", requester(models.RoleProposer), models.StatusDraft, models.StatusApproved},
		{"admin default", requester(models.RoleAdmin), "", models.StatusApproved},
		{"admin explicit", requester(models.RoleAdmin), models.StatusPending, models.StatusPending},
		{"admin unknown passes through", requester(models.RoleAdmin), "archived", "archived"},
		{"role without id is anonymous", campaignpolicy.Requester{Role: models.RoleAdmin}, models.StatusPending, models.StatusApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := campaignpolicy.ForRequester(tt.req, tt.status)
			if got.Status != tt.want {
				t.Errorf("ForRequester(%+v, %q).Status = %q, want %q", tt.req, tt.status, got.Status, tt.want)
			}
		})
	}
}

func TestCanView(t *testing.T) {
	owner := requester(models.RoleProposer)
	other := requester(models.RoleProposer)
	admin := requester(models.RoleAdmin)

	for _, status := range models.CampaignStatuses {
		c := &models.Campaign{OrganizerID: owner.ID, Status: status}
		public := status == models.StatusApproved || status == models.StatusActive || status == models.StatusCompleted

		if got := campaignpolicy.CanView(campaignpolicy.Requester{}, c); got != public {
			t.Errorf("anonymous CanView(%s) = %v, want %v", status, got, public)
		}
		if got := campaignpolicy.CanView(other, c); got != public {
			t.Errorf("non-owner CanView(%s) = %v, want %v", status, got, public)
		}
		if !campaignpolicy.CanView(owner, c) {
			t.Errorf("owner CanView(%s) = false, want true", status)
		}
		if !campaignpolicy.CanView(admin, c) {
			t.Errorf("admin CanView(%s) = false, want true", status)
		}
	}
}

func TestCanDelete(t *testing.T) {
	owner := requester(models.RoleProposer)
	c := &models.Campaign{OrganizerID: owner.ID, Status: models.StatusActive}

	if !campaignpolicy.CanDelete(owner, c) {
		t.Error("owner should be able to delete")
	}
	if !campaignpolicy.CanDelete(requester(models.RoleAdmin), c) {
		t.Error("admin should be able to delete")
	}
	if campaignpolicy.CanDelete(requester(models.RoleProposer), c) {
		t.Error("other proposer should not be able to delete")
	}
	if campaignpolicy.CanDelete(campaignpolicy.Requester{}, c) {
		t.Error("anonymous should not be able to delete")
	}
}

func TestCanPropose(t *testing.T) {
	tests := []struct {
		req  campaignpolicy.Requester
		want bool
	}{
		{campaignpolicy.Requester{}, false},
		{requester(models.RoleGuest), false},
		{requester(models.RoleMember), false},
		{requester(models.RoleProposer), true},
		{requester(models.RoleAdmin), true},
	}
	for _, tt := range tests {
		if got := campaignpolicy.CanPropose(tt.req); got != tt.want {
			t.Errorf("CanPropose(%q) = %v, want %v", tt.req.Role, got, tt.want)
		}
	}
}
