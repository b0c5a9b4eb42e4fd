// internal/app/system/lifecycle/manager.go
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/ecohub/internal/app/policy/campaignpolicy"
	campaignstore "github.com/dalemusser/ecohub/internal/app/store/campaigns"
	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/metrics"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the part of the campaign store the lifecycle needs.
type Store interface {
	Create(ctx context.Context, c models.Campaign) (models.Campaign, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Campaign, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, upd campaignstore.Content, statusIn []string) (models.Campaign, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to string, upd campaignstore.Content) (models.Campaign, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Manager applies lifecycle and ownership rules on top of the store.
type Manager struct {
	store  Store
	logger *zap.Logger
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

var (
	errNotFound     = apperr.NewNotFound("Campaign not found.")
	errInvalidDates = apperr.NewValidation("End date must be on or after the start date.")
)

// Create stores a new submission owned by req with its initial status.
func (m *Manager) Create(ctx context.Context, req campaignpolicy.Requester, c models.Campaign) (models.Campaign, error) {
	if !campaignpolicy.CanPropose(req) {
		return models.Campaign{}, apperr.NewAuthorization("Only organizers and administrators can create campaigns.")
	}
	if c.EndDate.Before(c.StartDate) {
		return models.Campaign{}, errInvalidDates
	}
	c.OrganizerID = req.ID
	c.OrganizerName = req.Name
	c.Status = InitialStatus(req.Role)

	created, err := m.store.Create(ctx, c)
	if err != nil {
		return models.Campaign{}, m.storeErr("create", err)
	}
	return created, nil
}

// Get returns a campaign req may see. Campaigns req may not see are
// reported as not found.
func (m *Manager) Get(ctx context.Context, req campaignpolicy.Requester, id primitive.ObjectID) (models.Campaign, error) {
	c, err := m.store.GetByID(ctx, id)
	if err != nil {
		return models.Campaign{}, m.storeErr("get", err)
	}
	if !campaignpolicy.CanView(req, &c) {
		return models.Campaign{}, errNotFound
	}
	return c, nil
}

// Edit applies a content edit. Owners edit while draft or pending; admins
// edit at any time. The write is conditioned on the status the decision
// was made against, so an approval landing in between is not overwritten.
func (m *Manager) Edit(ctx context.Context, req campaignpolicy.Requester, id primitive.ObjectID, upd campaignstore.Content) (models.Campaign, error) {
	cur, err := m.store.GetByID(ctx, id)
	if err != nil {
		return models.Campaign{}, m.storeErr("edit", err)
	}
	if !req.IsAdmin() {
		if !req.Owns(&cur) {
			return models.Campaign{}, apperr.NewAuthorization("You can only edit your own campaigns.")
		}
		if !OrganizerMayEdit(cur.Status) {
			return models.Campaign{}, apperr.NewAuthorization("Only an administrator can edit a campaign once it has been approved.")
		}
	}
	if err := checkContent(cur, upd); err != nil {
		return models.Campaign{}, err
	}
	if upd.Empty() {
		return cur, nil
	}

	var statusIn []string
	if !req.IsAdmin() {
		statusIn = editableByOrganizer
	}
	updated, err := m.store.UpdateContent(ctx, id, upd, statusIn)
	if errors.Is(err, campaignstore.ErrConditionFailed) {
		return models.Campaign{}, m.classifyMiss(ctx, id, "Campaign status changed; reload and try again.")
	}
	if err != nil {
		return models.Campaign{}, m.storeErr("edit", err)
	}
	return updated, nil
}

// Transition moves a campaign from → to. Only admins may transition; the
// stored status must still be from (optimistic concurrency) and the edge
// must exist in the graph. No mutation happens on any failure.
func (m *Manager) Transition(ctx context.Context, req campaignpolicy.Requester, id primitive.ObjectID, from, to string) (models.Campaign, error) {
	return m.TransitionEdit(ctx, req, id, from, to, campaignstore.Content{})
}

// TransitionEdit is Transition with a content edit written in the same
// conditional update. The edit is checked against the stored campaign
// first; if the edit or the transition is rejected nothing is written.
func (m *Manager) TransitionEdit(ctx context.Context, req campaignpolicy.Requester, id primitive.ObjectID, from, to string, upd campaignstore.Content) (models.Campaign, error) {
	c, err := m.transition(ctx, req, id, from, to, upd)
	outcome := "ok"
	if err != nil {
		outcome = apperr.KindOf(err).String()
	}
	metrics.RecordTransition(statusLabel(from), statusLabel(to), outcome)
	return c, err
}

// statusLabel keeps metric label values to the known set.
func statusLabel(s string) string {
	if models.IsCampaignStatus(s) {
		return s
	}
	return "unknown"
}

func (m *Manager) transition(ctx context.Context, req campaignpolicy.Requester, id primitive.ObjectID, from, to string, upd campaignstore.Content) (models.Campaign, error) {
	if !req.IsAdmin() {
		return models.Campaign{}, apperr.NewAuthorization("Only administrators can change campaign status.")
	}
	if !models.IsCampaignStatus(from) || !models.IsCampaignStatus(to) {
		return models.Campaign{}, apperr.NewValidation("Unknown campaign status.")
	}
	if !Allowed(from, to) {
		return models.Campaign{}, apperr.NewConflict(fmt.Sprintf("A campaign cannot move from %s to %s.", from, to))
	}

	if !upd.Empty() {
		cur, err := m.store.GetByID(ctx, id)
		if err != nil {
			return models.Campaign{}, m.storeErr("transition", err)
		}
		if cur.Status != from {
			return models.Campaign{}, apperr.NewConflict(fmt.Sprintf("Campaign is %s; reload and try again.", cur.Status))
		}
		if err := checkContent(cur, upd); err != nil {
			return models.Campaign{}, err
		}
	}

	updated, err := m.store.UpdateStatus(ctx, id, from, to, upd)
	if errors.Is(err, campaignstore.ErrConditionFailed) {
		return models.Campaign{}, m.classifyMiss(ctx, id, "")
	}
	if err != nil {
		return models.Campaign{}, m.storeErr("transition", err)
	}

	m.logger.Info("campaign status changed",
		zap.String("campaign_id", id.Hex()),
		zap.String("from", from),
		zap.String("to", to),
		zap.String("actor_id", req.ID.Hex()))
	return updated, nil
}

// Delete removes a campaign owned by req (or any campaign, for admins).
func (m *Manager) Delete(ctx context.Context, req campaignpolicy.Requester, id primitive.ObjectID) (models.Campaign, error) {
	c, err := m.store.GetByID(ctx, id)
	if err != nil {
		return models.Campaign{}, m.storeErr("delete", err)
	}
	if !campaignpolicy.CanDelete(req, &c) {
		return models.Campaign{}, apperr.NewAuthorization("You can only delete your own campaigns.")
	}
	n, err := m.store.Delete(ctx, id)
	if err != nil {
		return models.Campaign{}, m.storeErr("delete", err)
	}
	if n == 0 {
		return models.Campaign{}, errNotFound
	}
	return c, nil
}

// checkContent validates the document cur would become after upd.
func checkContent(cur models.Campaign, upd campaignstore.Content) error {
	next := upd.Apply(cur)
	if next.EndDate.Before(next.StartDate) {
		return errInvalidDates
	}
	if next.TargetParticipants != nil && *next.TargetParticipants < cur.CurrentParticipants {
		return apperr.NewValidation("Target participants cannot be below the current participant count.")
	}
	return nil
}

// classifyMiss re-reads after a conditional update matched nothing and
// reports NotFound or Conflict. msg overrides the conflict message.
func (m *Manager) classifyMiss(ctx context.Context, id primitive.ObjectID, msg string) error {
	c, err := m.store.GetByID(ctx, id)
	if err != nil {
		return m.storeErr("reread", err)
	}
	if msg == "" {
		msg = fmt.Sprintf("Campaign is %s; reload and try again.", c.Status)
	}
	return apperr.NewConflict(msg)
}

// storeErr maps store errors onto apperr kinds, logging anything the
// caller will only see generically.
func (m *Manager) storeErr(op string, err error) error {
	switch {
	case errors.Is(err, campaignstore.ErrNotFound):
		return errNotFound
	case errors.Is(err, campaignstore.ErrInvalidDocument):
		return apperr.NewValidation("Campaign failed validation.")
	case errors.Is(err, context.Canceled):
		return apperr.Wrap(err)
	}
	e := apperr.Unavailability(err)
	m.logger.Error("campaign storage failed",
		zap.String("op", op),
		zap.String("ref", e.Ref),
		zap.Error(err))
	return e
}
