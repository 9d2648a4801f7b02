// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	opportunitystore "github.com/dalemusser/opportunityhub/internal/app/store/opportunities"
	savedsearchstore "github.com/dalemusser/opportunityhub/internal/app/store/savedsearches"
	"github.com/dalemusser/opportunityhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll, logger); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if err := setValidator(ctx, db, coll, schema, logger); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				logger.Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure(opportunitystore.Collection, OpportunitySchema())
	ensure(savedsearchstore.Collection, SavedSearchSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists asks the server for name only, so a missing collection
// is not reported as created on a second run.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection creates name unless it exists. When listing fails it
// still tries to create and treats "already exists" as success.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, logger *zap.Logger) error {
	if exists, err := collectionExists(ctx, db, name); err == nil && exists {
		logger.Debug("collection exists", zap.String("collection", name))
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return nil
		}
		return err
	}
	logger.Info("created collection", zap.String("collection", name))
	return nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M, logger *zap.Logger) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	logger.Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

// commandError matches a server error by code or, for proxies that rewrite
// codes, by message.
func commandError(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandError(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandError(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandError(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

// OpportunitySchema guards the fields search filters and sorts on.
func OpportunitySchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "type", "category", "status", "created_at"},
			"properties": bson.M{
				"title":       nonBlank,
				"description": bson.M{"bsonType": "string"},
				"type":        bson.M{"enum": bson.A{models.TypeInternship, models.TypeVolunteer}},
				"category":    bson.M{"bsonType": "string"},
				"status": bson.M{"enum": bson.A{
					models.StatusDraft, models.StatusPending, models.StatusActive,
					models.StatusClosed, models.StatusCancelled,
				}},
				"views": bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"location": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"is_remote": bson.M{"bsonType": "bool"},
					},
				},
				"requirements": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"skills": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
					},
				},
				"application_deadline": bson.M{"bsonType": bson.A{"date", "null"}},
				"start_date":           bson.M{"bsonType": bson.A{"date", "null"}},
				"end_date":             bson.M{"bsonType": bson.A{"date", "null"}},
				"created_at":           bson.M{"bsonType": "date"},
			},
		},
	}
}

// SavedSearchSchema mirrors the checks savedsearches.Store.Create applies.
func SavedSearchSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "name", "filters", "is_active", "created_at"},
			"properties": bson.M{
				"user_id":    bson.M{"bsonType": "objectId"},
				"name":       bson.M{"bsonType": "string", "minLength": 1, "maxLength": savedsearchstore.MaxNameLength},
				"filters":    bson.M{"bsonType": "object"},
				"is_active":  bson.M{"bsonType": "bool"},
				"last_used":  bson.M{"bsonType": "date"},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}
