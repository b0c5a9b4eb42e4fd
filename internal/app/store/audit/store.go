// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is where audit events live.
const CollectionName = "audit_events"

// Campaign event types
const (
	EventCampaignCreated       = "campaign_created"
	EventCampaignUpdated       = "campaign_updated"
	EventCampaignDeleted       = "campaign_deleted"
	EventCampaignStatusChanged = "campaign_status_changed"
	EventCampaignJoined        = "campaign_joined"
)

// Event represents an audit event.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	EventType string             `bson:"event_type"`

	// What and who
	CampaignID *primitive.ObjectID `bson:"campaign_id,omitempty"`
	ActorID    *primitive.ObjectID `bson:"actor_id,omitempty"`
	ActorRole  string              `bson:"actor_role,omitempty"`

	// Request context
	IP        string `bson:"ip,omitempty"`
	UserAgent string `bson:"user_agent,omitempty"`
	RequestID string `bson:"request_id,omitempty"`

	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	// Varies by event type (from/to for transitions, changed fields for edits).
	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	CampaignID *primitive.ObjectID
	ActorID    *primitive.ObjectID
	EventType  string
	Since      *time.Time
	Until      *time.Time
	Limit      int64
	Offset     int64
}

func (f QueryFilter) bson() bson.M {
	q := bson.M{}
	if f.CampaignID != nil {
		q["campaign_id"] = *f.CampaignID
	}
	if f.ActorID != nil {
		q["actor_id"] = *f.ActorID
	}
	if f.EventType != "" {
		q["event_type"] = f.EventType
	}
	if f.Since != nil || f.Until != nil {
		rng := bson.M{}
		if f.Since != nil {
			rng["$gte"] = *f.Since
		}
		if f.Until != nil {
			rng["$lte"] = *f.Until
		}
		q["created_at"] = rng
	}
	return q
}

// Store manages audit event records. Indexes are created by the indexes
// package at startup.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Query returns matching events, newest first. Limit defaults to 100.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cur, err := s.c.Find(ctx, filter.bson(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the number of events matching the filter.
func (s *Store) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, filter.bson())
}

// ForCampaign returns the most recent events for one campaign.
func (s *Store) ForCampaign(ctx context.Context, campaignID primitive.ObjectID, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{CampaignID: &campaignID, Limit: limit})
}

// ByActor returns the most recent events performed by one user.
func (s *Store) ByActor(ctx context.Context, actorID primitive.ObjectID, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{ActorID: &actorID, Limit: limit})
}
