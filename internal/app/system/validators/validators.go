// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/ecohub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Server error codes this package reacts to.
const (
	codeNamespaceExists = 48
	codeCommandNotFound = 59
	codeNotImplemented  = 115
)

// collection is one collection EcoHub owns. A nil validator means the
// collection is only created.
type collection struct {
	name      string
	validator func() bson.M
}

var collections = []collection{
	{name: "campaigns", validator: campaignsValidator},
	// Audit events are append-only and written by the app.
	{name: "audit_events"},
}

// EnsureAll creates EcoHub's collections and attaches their JSON-Schema
// validators. Servers without validator support (some DocumentDB versions)
// are logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, c := range collections {
		if err := ensure(ctx, db, c); err != nil {
			problems = append(problems, c.name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensure creates c with its validator, or updates the validator with
// collMod when c already exists (a prior run, or a concurrent instance).
func ensure(ctx context.Context, db *mongo.Database, c collection) error {
	opts := options.CreateCollection()
	var validator bson.M
	if c.validator != nil {
		validator = c.validator()
		opts.SetValidator(validator).
			SetValidationLevel("moderate").
			SetValidationAction("error")
	}

	err := db.CreateCollection(ctx, c.name, opts)
	switch {
	case err == nil:
		zap.L().Info("created collection", zap.String("collection", c.name))
		return nil
	case unsupported(err):
		zap.L().Info("validator skipped (unsupported)", zap.String("collection", c.name))
		if err := db.CreateCollection(ctx, c.name); err != nil && !hasCode(err, codeNamespaceExists) {
			return err
		}
		return nil
	case !hasCode(err, codeNamespaceExists):
		return err
	}
	if validator == nil {
		return nil
	}

	cmd := bson.D{
		{Key: "collMod", Value: c.name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		if unsupported(err) {
			zap.L().Info("validator skipped (unsupported)", zap.String("collection", c.name))
			return nil
		}
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", c.name))
	return nil
}

func hasCode(err error, code int) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCode(code)
}

// unsupported reports a server that cannot run validators at all.
func unsupported(err error) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	return se.HasErrorCode(codeCommandNotFound) ||
		se.HasErrorCode(codeNotImplemented) ||
		se.HasErrorMessage("not supported")
}

func toA(vals []string) bson.A {
	out := make(bson.A, 0, len(vals))
	for _, v := range vals {
		out = append(out, v)
	}
	return out
}

// campaignsValidator combines the document shape with the cross-field
// rules: end_date >= start_date, and current_participants never above a
// set target_participants.
func campaignsValidator() bson.M {
	nonBlank := bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	count := bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{
				"title", "description", "category", "organizer_id", "location",
				"start_date", "end_date", "status", "current_participants",
			},
			"properties": bson.M{
				"title":             bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200, "pattern": ".*\\S.*"},
				"description":       nonBlank,
				"short_description": bson.M{"bsonType": "string", "maxLength": 300},
				"category":          bson.M{"enum": toA(models.CampaignCategories)},
				"status":            bson.M{"enum": toA(models.CampaignStatuses)},
				"tags":              bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"organizer_id":      bson.M{"bsonType": "objectId"},
				"location": bson.M{
					"bsonType": "object",
					"required": bson.A{"type", "coordinates"},
					"properties": bson.M{
						"type": bson.M{"enum": bson.A{"Point"}},
						"coordinates": bson.M{
							"bsonType": "array",
							"minItems": 2,
							"maxItems": 2,
							"items":    bson.M{"bsonType": bson.A{"double", "int", "long"}},
						},
					},
				},
				"start_date":           bson.M{"bsonType": "date"},
				"end_date":             bson.M{"bsonType": "date"},
				"current_participants": count,
				"target_participants":  bson.M{"bsonType": bson.A{"int", "long", "null"}, "minimum": 1},
			},
		},
		"$expr": bson.M{
			"$and": bson.A{
				bson.M{"$gte": bson.A{"$end_date", "$start_date"}},
				bson.M{"$or": bson.A{
					bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$target_participants", nil}}, nil}},
					bson.M{"$lte": bson.A{"$current_participants", "$target_participants"}},
				}},
			},
		},
	}
}
