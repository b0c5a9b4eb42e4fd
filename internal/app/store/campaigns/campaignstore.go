// internal/app/store/campaigns/campaignstore.go
package campaignstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/ecohub/internal/app/store/queries/campaignqueries"
	"github.com/dalemusser/ecohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ecohub/internal/app/system/paging"
	"github.com/dalemusser/ecohub/internal/domain/models"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the campaigns collection.
const CollectionName = "campaigns"

var (
	// ErrNotFound is returned when no campaign has the given id.
	ErrNotFound = errors.New("campaign not found")

	// ErrConditionFailed is returned by conditional updates when the
	// campaign is missing or no longer satisfies the condition. Callers
	// re-read to tell the two apart.
	ErrConditionFailed = errors.New("campaign did not match update condition")

	// ErrInvalidDocument is returned when the collection validator
	// rejects a write.
	ErrInvalidDocument = errors.New("campaign failed document validation")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("campaign storage unavailable")
)

// codeDocumentValidationFailure is MongoDB's DocumentValidationFailure.
const codeDocumentValidationFailure = 121

type Store struct {
	c  *mongo.Collection
	cb *gobreaker.CircuitBreaker[any]
}

func New(db *mongo.Database) *Store {
	return NewWithBreaker(db, DefaultBreakerConfig)
}

// NewWithBreaker is New with explicit circuit breaker settings.
func NewWithBreaker(db *mongo.Database, cfg BreakerConfig) *Store {
	return &Store{c: db.Collection(CollectionName), cb: newBreaker(cfg)}
}

// Create inserts c, assigning the id and timestamps. Status and organizer
// must already be set by the caller.
func (s *Store) Create(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CurrentParticipants = 0
	c.CreatedAt = now
	c.UpdatedAt = now
	c.DescriptionText = htmlsanitize.PlainText(c.Description)
	normalizeSlices(&c)

	return run(s, func() (models.Campaign, error) {
		if _, err := s.c.InsertOne(ctx, c); err != nil {
			return models.Campaign{}, classify(err)
		}
		return c, nil
	})
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Campaign, error) {
	return run(s, func() (models.Campaign, error) {
		var c models.Campaign
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return models.Campaign{}, ErrNotFound
			}
			return models.Campaign{}, err
		}
		return c, nil
	})
}

// List runs a discovery filter for one page and counts the full match set.
func (s *Store) List(ctx context.Context, f campaignqueries.Filter, w paging.Window) ([]models.Campaign, int64, error) {
	rows, err := run(s, func() ([]models.Campaign, error) {
		cur, err := s.c.Find(ctx, f.Find, f.FindOptions(w))
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)

		var out []models.Campaign
		if err := cur.All(ctx, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, 0, err
	}

	total, err := run(s, func() (int64, error) {
		return s.c.CountDocuments(ctx, f.Count)
	})
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateContent applies a partial content edit. When statusIn is non-empty
// the update only applies while the campaign's status is one of them.
// Returns ErrConditionFailed if nothing matched.
func (s *Store) UpdateContent(ctx context.Context, id primitive.ObjectID, upd Content, statusIn []string) (models.Campaign, error) {
	filter := bson.M{"_id": id}
	if len(statusIn) > 0 {
		filter["status"] = bson.M{"$in": statusIn}
	}
	set := upd.setDoc()
	set["updated_at"] = time.Now().UTC()
	return s.findOneAndUpdate(ctx, filter, bson.M{"$set": set})
}

// UpdateStatus moves a campaign from one status to another, applying upd
// in the same write. The update is conditioned on the stored status still
// being from, so either both land or neither does.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to string, upd Content) (models.Campaign, error) {
	set := upd.setDoc()
	set["status"] = to
	set["updated_at"] = time.Now().UTC()
	return s.findOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
	)
}

// IncrementParticipants atomically adds one participant to an active
// campaign that is below its target (or has none). This is a single
// findOneAndUpdate; there is no read-then-write.
func (s *Store) IncrementParticipants(ctx context.Context, id primitive.ObjectID) (models.Campaign, error) {
	filter := bson.M{
		"_id":    id,
		"status": models.StatusActive,
		"$or": bson.A{
			bson.M{"target_participants": nil},
			bson.M{"target_participants": bson.M{"$lte": 0}},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$current_participants", "$target_participants"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"current_participants": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	return s.findOneAndUpdate(ctx, filter, update)
}

// Delete removes a campaign by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return run(s, func() (int64, error) {
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return 0, err
		}
		return res.DeletedCount, nil
	})
}

func (s *Store) findOneAndUpdate(ctx context.Context, filter, update bson.M) (models.Campaign, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return run(s, func() (models.Campaign, error) {
		var c models.Campaign
		err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return models.Campaign{}, ErrConditionFailed
			}
			return models.Campaign{}, classify(err)
		}
		return c, nil
	})
}

// classify maps validator rejections to ErrInvalidDocument.
func classify(err error) error {
	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(codeDocumentValidationFailure) {
		return ErrInvalidDocument
	}
	return err
}

func normalizeSlices(c *models.Campaign) {
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Images == nil {
		c.Images = []models.CampaignImage{}
	}
	if c.Requirements == nil {
		c.Requirements = []string{}
	}
	if c.Resources == nil {
		c.Resources = []models.ResourceNeed{}
	}
}
