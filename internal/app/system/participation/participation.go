// Package participation implements joining a campaign.
//
// The participant count is only ever changed by one conditional atomic
// increment in storage ($inc guarded by status and capacity). There is no
// read-then-write, so concurrent joins are never lost and never push the
// count past the target. Only the count is tracked; who joined is recorded
// in the audit log, not on the campaign.
package participation

import (
	"context"
	"errors"

	campaignstore "github.com/dalemusser/ecohub/internal/app/store/campaigns"
	"github.com/dalemusser/ecohub/internal/app/system/apperr"
	"github.com/dalemusser/ecohub/internal/app/system/metrics"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MaxAttempts bounds the compare-and-swap loop. A retry only happens when
// the conditional increment missed but a re-read shows a joinable campaign,
// i.e. the campaign changed between the two calls.
const MaxAttempts = 3

// Store is the part of the campaign store joins need.
type Store interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Campaign, error)
	IncrementParticipants(ctx context.Context, id primitive.ObjectID) (models.Campaign, error)
}

type Manager struct {
	store  Store
	logger *zap.Logger
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

var (
	ErrNotActive = apperr.NewPreconditionFailed("Campaign is not active")
	ErrFull      = apperr.NewPreconditionFailed("Campaign is full")
	errNotFound  = apperr.NewNotFound("Campaign not found.")
	errContended = apperr.NewConflict("Campaign is busy; please try again.")
)

// Join adds one participant to an active campaign and returns the new count.
//
// Failures: NotFound (no such campaign), PreconditionFailed "not active"
// (status != active), PreconditionFailed "full" (current == target),
// Conflict (still contended after MaxAttempts), Unavailable (storage).
func (m *Manager) Join(ctx context.Context, campaignID, userID primitive.ObjectID) (int, error) {
	n, outcome, err := m.join(ctx, campaignID)
	metrics.RecordJoin(outcome)
	if err == nil {
		m.logger.Info("campaign joined",
			zap.String("campaign_id", campaignID.Hex()),
			zap.String("user_id", userID.Hex()),
			zap.Int("participants", n))
	}
	return n, err
}

func (m *Manager) join(ctx context.Context, id primitive.ObjectID) (int, string, error) {
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		c, err := m.store.IncrementParticipants(ctx, id)
		if err == nil {
			return c.CurrentParticipants, "joined", nil
		}
		if !errors.Is(err, campaignstore.ErrConditionFailed) {
			return 0, "error", m.storeErr(err)
		}

		// The guarded update matched nothing; find out why.
		cur, err := m.store.GetByID(ctx, id)
		if errors.Is(err, campaignstore.ErrNotFound) {
			return 0, "not_found", errNotFound
		}
		if err != nil {
			return 0, "error", m.storeErr(err)
		}
		if cur.Status != models.StatusActive {
			return 0, "not_active", ErrNotActive
		}
		if cur.IsFull() {
			return 0, "full", ErrFull
		}
		if attempt < MaxAttempts {
			metrics.JoinRetriesTotal.Inc()
		}
	}
	return 0, "conflict", errContended
}

func (m *Manager) storeErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return apperr.Wrap(err)
	}
	e := apperr.Unavailability(err)
	m.logger.Error("campaign storage failed",
		zap.String("op", "join"),
		zap.String("ref", e.Ref),
		zap.Error(err))
	return e
}
