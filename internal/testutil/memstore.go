package testutil

import (
	"context"
	"sync"
	"time"

	campaignstore "github.com/dalemusser/ecohub/internal/app/store/campaigns"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemCampaigns is an in-memory campaign store with the same conditional
// semantics as the Mongo store. Use it for manager tests that do not need
// query evaluation.
type MemCampaigns struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Campaign

	// Err, when set, is returned by every call (simulates an outage).
	Err error
}

func NewMemCampaigns() *MemCampaigns {
	return &MemCampaigns{docs: map[primitive.ObjectID]models.Campaign{}}
}

// Put stores c as-is, assigning an id if it has none.
func (m *MemCampaigns) Put(c models.Campaign) models.Campaign {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	m.docs[c.ID] = c
	return c
}

// Peek returns the stored campaign without going through Err.
func (m *MemCampaigns) Peek(id primitive.ObjectID) (models.Campaign, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.docs[id]
	return c, ok
}

func (m *MemCampaigns) Create(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	if m.Err != nil {
		return models.Campaign{}, m.Err
	}
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CurrentParticipants = 0
	c.CreatedAt, c.UpdatedAt = now, now
	return m.Put(c), nil
}

func (m *MemCampaigns) GetByID(ctx context.Context, id primitive.ObjectID) (models.Campaign, error) {
	if m.Err != nil {
		return models.Campaign{}, m.Err
	}
	c, ok := m.Peek(id)
	if !ok {
		return models.Campaign{}, campaignstore.ErrNotFound
	}
	return c, nil
}

func (m *MemCampaigns) UpdateContent(ctx context.Context, id primitive.ObjectID, upd campaignstore.Content, statusIn []string) (models.Campaign, error) {
	return m.update(id, func(c *models.Campaign) bool {
		if len(statusIn) > 0 && !containsString(statusIn, c.Status) {
			return false
		}
		*c = upd.Apply(*c)
		return true
	})
}

func (m *MemCampaigns) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to string, upd campaignstore.Content) (models.Campaign, error) {
	return m.update(id, func(c *models.Campaign) bool {
		if c.Status != from {
			return false
		}
		*c = upd.Apply(*c)
		c.Status = to
		return true
	})
}

func (m *MemCampaigns) IncrementParticipants(ctx context.Context, id primitive.ObjectID) (models.Campaign, error) {
	return m.update(id, func(c *models.Campaign) bool {
		if c.Status != models.StatusActive || c.IsFull() {
			return false
		}
		c.CurrentParticipants++
		return true
	})
}

func (m *MemCampaigns) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return 0, nil
	}
	delete(m.docs, id)
	return 1, nil
}

func (m *MemCampaigns) update(id primitive.ObjectID, apply func(*models.Campaign) bool) (models.Campaign, error) {
	if m.Err != nil {
		return models.Campaign{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.docs[id]
	if !ok || !apply(&c) {
		return models.Campaign{}, campaignstore.ErrConditionFailed
	}
	c.UpdatedAt = time.Now().UTC()
	m.docs[id] = c
	return c, nil
}

func containsString(vals []string, s string) bool {
	for _, v := range vals {
		if v == s {
			return true
		}
	}
	return false
}
