package indexes_test

import (
	"context"
	"testing"

	"github.com/dalemusser/ecohub/internal/app/system/indexes"
	"github.com/dalemusser/ecohub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexNames(t *testing.T, ctx context.Context, coll *mongo.Collection) map[string]bool {
	t.Helper()
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCampaignIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNames(t, ctx, db.Collection("campaigns"))
	for _, want := range []string{
		"idx_campaigns_location_2dsphere",
		"idx_campaigns_status_createdat_id",
		"idx_campaigns_category_status_createdat",
		"idx_campaigns_organizer_createdat",
	} {
		if !names[want] {
			t.Errorf("missing index %q", want)
		}
	}

	names = indexNames(t, ctx, db.Collection("audit_events"))
	if !names["idx_audit_campaign_createdat"] {
		t.Error("missing index idx_audit_campaign_createdat")
	}
}

func TestEnsureAll_RenamesIndexWithSameKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coll := db.Collection("campaigns")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "organizer_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("legacy_organizer"),
	})
	if err != nil {
		t.Fatalf("create legacy index: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNames(t, ctx, coll)
	if names["legacy_organizer"] {
		t.Error("legacy index should have been replaced")
	}
	if !names["idx_campaigns_organizer_createdat"] {
		t.Error("expected renamed index")
	}
}
