package indexes_test

import (
	"testing"

	opportunitystore "github.com/dalemusser/opportunityhub/internal/app/store/opportunities"
	savedsearchstore "github.com/dalemusser/opportunityhub/internal/app/store/savedsearches"
	"github.com/dalemusser/opportunityhub/internal/app/system/indexes"
	"github.com/dalemusser/opportunityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func indexNames(t *testing.T, coll *mongo.Collection) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

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

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		coll string
		want []mongo.IndexModel
	}{
		{opportunitystore.Collection, indexes.OpportunityIndexes()},
		{savedsearchstore.Collection, indexes.SavedSearchIndexes()},
	}
	for _, tt := range tests {
		names := indexNames(t, db.Collection(tt.coll))
		for _, m := range tt.want {
			if !names[*m.Options.Name] {
				t.Errorf("%s: missing index %q", tt.coll, *m.Options.Name)
			}
		}
	}
}

func TestEnsureAll_RenamesMisnamedIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coll := db.Collection(savedsearchstore.Collection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "last_used", Value: -1}},
		Options: options.Index().SetName("legacy_last_used"),
	})
	if err != nil {
		t.Fatalf("CreateOne failed: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	names := indexNames(t, coll)
	if names["legacy_last_used"] || !names["idx_saved_last_used"] {
		t.Errorf("index names = %v, want legacy renamed to idx_saved_last_used", names)
	}
}
