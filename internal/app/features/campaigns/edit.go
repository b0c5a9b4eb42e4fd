// internal/app/features/campaigns/edit.go
package campaigns

import (
	"net/http"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/respond"
	"github.com/dalemusser/ecohub/internal/app/system/timeouts"
	"github.com/dalemusser/ecohub/internal/domain/models"
)

// HandleUpdate handles PUT /campaigns/{id}.
//
// Content fields are applied as a partial edit. A status field is a
// lifecycle transition: it needs expectedStatus (the status the client
// last saw) and is written together with the content, so a rejected
// transition or a rejected edit leaves the campaign unchanged.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.ErrLog.Respond(w, r, "update campaign", err)
		return
	}
	var in updateRequest
	if err := respond.Decode(r, &in); err != nil {
		h.ErrLog.Respond(w, r, "update campaign", err)
		return
	}
	upd, fields, err := in.content()
	if err != nil {
		h.ErrLog.Respond(w, r, "update campaign", err)
		return
	}
	if in.Status != nil && in.ExpectedStatus == nil {
		h.ErrLog.Respond(w, r, "update campaign",
			apperr.NewValidation("expectedStatus is required when changing status."))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "update campaign")
	defer cancel()
	req := campaignpolicy.RequesterFrom(r)

	var updated models.Campaign
	if in.Status != nil {
		from, to := *in.ExpectedStatus, *in.Status
		updated, err = h.Lifecycle.TransitionEdit(ctx, req, id, from, to, upd)
		if err != nil {
			h.Audit.StatusChangeRejected(ctx, r, id, from, to, apperr.From(err).Message)
			h.ErrLog.Respond(w, r, "update campaign status", err)
			return
		}
		h.Audit.StatusChanged(ctx, r, id, from, to)
	} else {
		updated, err = h.Lifecycle.Edit(ctx, req, id, upd)
		if err != nil {
			h.ErrLog.Respond(w, r, "update campaign", err)
			return
		}
	}
	if len(fields) > 0 {
		h.Audit.CampaignUpdated(ctx, r, id, fields)
	}

	respond.JSON(w, http.StatusOK, campaignResponse{
		Success:  true,
		Message:  "Campaign updated successfully",
		Campaign: updated,
	})
}
