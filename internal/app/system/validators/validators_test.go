package validators_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/opportunityhub/internal/app/system/validators"
	"github.com/dalemusser/opportunityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*mongo.Database, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return db, ctx
}

func TestEnsureAll_IdempotentAndCreatesCollections(t *testing.T) {
	db, ctx := setup(t)

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool)
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"opportunities", "saved_searches"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestOpportunityValidator(t *testing.T) {
	db, ctx := setup(t)
	coll := db.Collection("opportunities")
	now := time.Now().UTC()

	valid := bson.M{
		"title":      "Data Intern",
		"type":       "internship",
		"category":   "technology",
		"status":     "active",
		"views":      int64(0),
		"created_at": now,
	}
	if _, err := coll.InsertOne(ctx, valid); err != nil {
		t.Fatalf("insert valid opportunity failed: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(bson.M)
	}{
		{"missing title", func(d bson.M) { delete(d, "title") }},
		{"blank title", func(d bson.M) { d["title"] = "   " }},
		{"unknown status", func(d bson.M) { d["status"] = "published" }},
		{"unknown type", func(d bson.M) { d["type"] = "job" }},
		{"negative views", func(d bson.M) { d["views"] = int64(-1) }},
		{"deadline not a date", func(d bson.M) { d["application_deadline"] = "tomorrow" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := bson.M{}
			for k, v := range valid {
				doc[k] = v
			}
			tt.mutate(doc)
			if _, err := coll.InsertOne(ctx, doc); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSavedSearchValidator(t *testing.T) {
	db, ctx := setup(t)
	coll := db.Collection("saved_searches")
	now := time.Now().UTC()

	_, err := coll.InsertOne(ctx, bson.M{
		"user_id":    primitive.NewObjectID(),
		"name":       "Lagos tech",
		"filters":    bson.M{"query": "go"},
		"is_active":  true,
		"created_at": now,
	})
	if err != nil {
		t.Fatalf("insert valid saved search failed: %v", err)
	}

	_, err = coll.InsertOne(ctx, bson.M{
		"user_id":    "not-an-object-id",
		"name":       "x",
		"filters":    bson.M{},
		"is_active":  true,
		"created_at": now,
	})
	if err == nil {
		t.Error("expected validation error for a string user_id")
	}

	_, err = coll.InsertOne(ctx, bson.M{"user_id": primitive.NewObjectID(), "name": ""})
	if err == nil {
		t.Error("expected validation error for missing fields")
	}
}
