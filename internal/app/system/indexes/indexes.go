// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	opportunitystore "github.com/dalemusser/opportunityhub/internal/app/store/opportunities"
	savedsearchstore "github.com/dalemusser/opportunityhub/internal/app/store/savedsearches"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureIndexSet(ctx, db.Collection(opportunitystore.Collection), OpportunityIndexes(), logger); err != nil {
		problems = append(problems, opportunitystore.Collection+": "+err.Error())
	}
	if err := ensureIndexSet(ctx, db.Collection(savedsearchstore.Collection), SavedSearchIndexes(), logger); err != nil {
		problems = append(problems, savedsearchstore.Collection+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// OpportunityIndexes back the search sorts, the facet filters and the
// expiry sweep. Every search filters on status first.
func OpportunityIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		named("idx_opps_status_created_id", bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
		named("idx_opps_status_deadline", bson.D{{Key: "status", Value: 1}, {Key: "application_deadline", Value: 1}}),
		named("idx_opps_status_views", bson.D{{Key: "status", Value: 1}, {Key: "views", Value: -1}}),
		named("idx_opps_status_stipend", bson.D{{Key: "status", Value: 1}, {Key: "benefits.stipend.amount", Value: -1}}),
		named("idx_opps_status_category", bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}}),
		named("idx_opps_type_status", bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}}),
		named("idx_opps_state_lga", bson.D{{Key: "location.state", Value: 1}, {Key: "location.lga", Value: 1}}),
		named("idx_opps_skills", bson.D{{Key: "requirements.skills", Value: 1}}),
	}
}

// SavedSearchIndexes back the per-user list and recency queries.
func SavedSearchIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		named("idx_saved_user_active_created", bson.D{{Key: "user_id", Value: 1}, {Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}),
		named("idx_saved_last_used", bson.D{{Key: "last_used", Value: -1}}),
	}
}

func named(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name string `bson:"name"`
	Key  bson.D `bson:"key"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{} // sig -> index
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet creates missing indexes. An index with the desired keys
// under another name is dropped and recreated so names stay predictable.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, want []mongo.IndexModel, logger *zap.Logger) error {
	existing, err := listExisting(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes to reconcile.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range want {
		name := *m.Options.Name
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		log := logger.With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig))

		if ex, ok := existing[sig]; ok {
			if ex.Name == name {
				log.Debug("reusing existing index")
				continue
			}
			log.Info("renaming index to align with desired name", zap.String("from", ex.Name))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: rename drop failed: %v", name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		log.Info("index created", zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
