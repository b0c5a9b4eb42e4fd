package lifecycle

import (
	"testing"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{models.RoleAdmin, models.StatusApproved},
		{models.RoleProposer, models.StatusPending},
		{models.RoleMember, models.StatusPending},
		{"", models.StatusPending},
	}
	for _, tt := range tests {
		if got := InitialStatus(tt.role); got != tt.want {
			t.Errorf("InitialStatus(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestAllowed_ExactGraph(t *testing.T) {
	want := map[[2]string]bool{
		{models.StatusPending, models.StatusApproved}:  true,
		{models.StatusPending, models.StatusRejected}:  true,
		{models.StatusApproved, models.StatusActive}:   true,
		{models.StatusActive, models.StatusCompleted}:  true,
	}
	for _, from := range models.CampaignStatuses {
		for _, to := range models.CampaignStatuses {
			if got := Allowed(from, to); got != want[[2]string{from, to}] {
				t.Errorf("Allowed(%s, %s) = %v", from, to, got)
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []string{models.StatusRejected, models.StatusCompleted} {
		if !Terminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	if Terminal(models.StatusPending) || Terminal(models.StatusActive) {
		t.Error("pending and active are not terminal")
	}
}

func TestNext_ReturnsCopy(t *testing.T) {
	n := Next(models.StatusPending)
	n[0] = "mutated"
	if !Allowed(models.StatusPending, models.StatusApproved) {
		t.Error("mutating Next's result must not change the graph")
	}
}

func TestCanEdit(t *testing.T) {
	owner := campaignpolicy.Requester{ID: primitive.NewObjectID(), Role: models.RoleProposer}
	other := campaignpolicy.Requester{ID: primitive.NewObjectID(), Role: models.RoleProposer}
	admin := campaignpolicy.Requester{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	for _, status := range models.CampaignStatuses {
		c := &models.Campaign{OrganizerID: owner.ID, Status: status}
		ownerMay := status == models.StatusDraft || status == models.StatusPending

		if got := CanEdit(owner, c); got != ownerMay {
			t.Errorf("owner CanEdit(%s) = %v, want %v", status, got, ownerMay)
		}
		if CanEdit(other, c) {
			t.Errorf("non-owner CanEdit(%s) = true", status)
		}
		if !CanEdit(admin, c) {
			t.Errorf("admin CanEdit(%s) = false", status)
		}
	}
}
