// internal/app/features/campaigns/join.go
package campaigns

import (
	"net/http"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/dalemusser/ecohub/internal/app/system/timeouts"
)

// HandleJoin handles POST /campaigns/{id}/join.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, "join campaign", err)
		return
	}
	req := campaignpolicy.RequesterFrom(r)
	if req.Anonymous() {
		respond.Fail(w, http.StatusUnauthorized, "Please sign in to continue.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "join campaign")
	defer cancel()

	n, err := h.Participation.Join(ctx, id, req.ID)
	if err != nil {
		if k := apperr.KindOf(err); k != apperr.Internal && k != apperr.Unavailable {
			h.Audit.JoinRejected(ctx, r, id, apperr.From(err).Message)
		}
		h.ErrLog.Respond(w, r, "join campaign", err)
		return
	}
	h.Audit.Joined(ctx, r, id, n)

	respond.JSON(w, http.StatusOK, joinResponse{
		Success:      true,
		Message:      "Successfully joined the campaign",
		Participants: n,
	})
}
