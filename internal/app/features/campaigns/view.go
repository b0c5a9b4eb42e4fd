// internal/app/features/campaigns/view.go
package campaigns

import (
	"net/http"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/dalemusser/ecohub/internal/app/system/timeouts"
)

// ServeView handles GET /campaigns/{id}. Campaigns the caller may not see
// are reported as not found.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, "view campaign", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "view campaign")
	defer cancel()

	c, err := h.Lifecycle.Get(ctx, campaignpolicy.RequesterFrom(r), id)
	if err != nil {
		h.ErrLog.Respond(w, r, "view campaign", err)
		return
	}
	respond.JSON(w, http.StatusOK, campaignResponse{Success: true, Campaign: c})
}
