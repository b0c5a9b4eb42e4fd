// internal/app/features/campaigns/status.go
package campaigns

import (
	"net/http"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/dalemusser/ecohub/internal/app/system/timeouts"
)

// HandleTransition handles POST /campaigns/{id}/status with {from, to}.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, "transition campaign", err)
		return
	}
	var in statusRequest
	if err := respond.Decode(r, &in); err != nil {
		h.ErrLog.Respond(w, r, "transition campaign", err)
		return
	}
	if err := validate(in); err != nil {
		h.ErrLog.Respond(w, r, "transition campaign", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "transition campaign")
	defer cancel()

	updated, err := h.Lifecycle.Transition(ctx, campaignpolicy.RequesterFrom(r), id, in.From, in.To)
	if err != nil {
		h.Audit.StatusChangeRejected(ctx, r, id, in.From, in.To, apperr.From(err).Message)
		h.ErrLog.Respond(w, r, "transition campaign", err)
		return
	}
	h.Audit.StatusChanged(ctx, r, id, in.From, in.To)

	respond.JSON(w, http.StatusOK, campaignResponse{
		Success:  true,
		Message:  "Campaign status updated",
		Campaign: updated,
	})
}
