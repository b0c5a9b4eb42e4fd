// internal/app/features/campaigns/delete.go
package campaigns

import (
	"net/http"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/dalemusser/ecohub/internal/app/system/timeouts"
)

// HandleDelete handles DELETE /campaigns/{id}. Organizers delete their own
// campaigns; admins delete any.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, "delete campaign", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "delete campaign")
	defer cancel()

	deleted, err := h.Lifecycle.Delete(ctx, campaignpolicy.RequesterFrom(r), id)
	if err != nil {
		h.ErrLog.Respond(w, r, "delete campaign", err)
		return
	}
	h.Audit.CampaignDeleted(ctx, r, deleted)

	respond.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Campaign deleted successfully"})
}
