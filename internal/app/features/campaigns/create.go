// internal/app/features/campaigns/create.go
package campaigns

import (
	"net/http"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/dalemusser/ecohub/internal/app/system/timeouts"
)

// HandleCreate handles POST /campaigns. Admin submissions start approved,
// everyone else's start pending.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createRequest
	if err := respond.Decode(r, &in); err != nil {
		h.ErrLog.Respond(w, r, "create campaign", err)
		return
	}
	c, err := in.campaign()
	if err != nil {
		h.ErrLog.Respond(w, r, "create campaign", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "create campaign")
	defer cancel()

	created, err := h.Lifecycle.Create(ctx, campaignpolicy.RequesterFrom(r), c)
	if err != nil {
		h.ErrLog.Respond(w, r, "create campaign", err)
		return
	}
	h.Audit.CampaignCreated(ctx, r, created)

	respond.JSON(w, http.StatusCreated, campaignResponse{
		Success:  true,
		Message:  "Campaign created successfully",
		Campaign: created,
	})
}
