package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/ecohub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ecohub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// SampleCampaign returns a valid, unsaved campaign. Callers adjust fields
// before passing it to CreateCampaign.
func SampleCampaign(title string, organizerID primitive.ObjectID) models.Campaign {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return models.Campaign{
		ID:               primitive.NewObjectID(),
		Title:            title,
		Description:      "Help restore the local environment.",
		ShortDescription: "Community cleanup",
		Category:         models.CategoryCleanup,
		Tags:             []string{"community"},
		OrganizerID:      organizerID,
		OrganizerName:    "Test Organizer",
		Location:         models.NewGeoPoint(-122.4194, 37.7749),
		Address:          models.Address{City: "San Francisco", State: "CA"},
		StartDate:        now.Add(24 * time.Hour),
		EndDate:          now.Add(48 * time.Hour),
		Images:           []models.CampaignImage{},
		Status:           models.StatusApproved,
		Requirements:     []string{},
		Resources:        []models.ResourceNeed{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// CreateCampaign inserts c directly, bypassing the lifecycle rules.
func (f *Fixtures) CreateCampaign(ctx context.Context, c models.Campaign) models.Campaign {
	f.t.Helper()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		c.UpdatedAt = c.CreatedAt
	}
	if c.DescriptionText == "" {
		c.DescriptionText = htmlsanitize.PlainText(c.Description)
	}
	if _, err := f.db.Collection("campaigns").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("CreateCampaign(%q): %v", c.Title, err)
	}
	return c
}

// CreateCampaignAt inserts an approved campaign at the given coordinates.
func (f *Fixtures) CreateCampaignAt(ctx context.Context, title string, lng, lat float64) models.Campaign {
	f.t.Helper()
	c := SampleCampaign(title, primitive.NewObjectID())
	c.Location = models.NewGeoPoint(lng, lat)
	return f.CreateCampaign(ctx, c)
}

// CreateCampaignWithStatus inserts a campaign in the given status owned by organizerID.
func (f *Fixtures) CreateCampaignWithStatus(ctx context.Context, title, status string, organizerID primitive.ObjectID) models.Campaign {
	f.t.Helper()
	c := SampleCampaign(title, organizerID)
	c.Status = status
	return f.CreateCampaign(ctx, c)
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }
