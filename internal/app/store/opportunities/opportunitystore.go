// internal/app/store/opportunities/opportunitystore.go
package opportunitystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/opportunityhub/internal/app/search/compiler"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding opportunities.
const Collection = "opportunities"

// ErrNotFound is returned when no active opportunity has the requested id.
var ErrNotFound = errors.New("opportunity not found")

// Store executes compiled queries against the opportunities collection.
type Store struct {
	c *mongo.Collection
}

// New creates an opportunities store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Insert stores a new opportunity, assigning an ID and timestamps when they
// are missing. Used for seeding and tests; authoring lives elsewhere.
func (s *Store) Insert(ctx context.Context, o models.Opportunity) (models.Opportunity, error) {
	now := time.Now().UTC()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if o.Status == "" {
		o.Status = models.StatusDraft
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}

// Count returns how many documents match the compiled query's predicate.
func (s *Store) Count(ctx context.Context, q compiler.Query) (int64, error) {
	return s.c.CountDocuments(ctx, q.Filter)
}

// Find returns the page of documents selected by the compiled query.
func (s *Store) Find(ctx context.Context, q compiler.Query) ([]models.Opportunity, error) {
	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cur, err := s.c.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Opportunity, 0, q.Limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Suggest returns up to limit title/type/category projections matching the
// predicate, in natural order.
func (s *Store) Suggest(ctx context.Context, predicate bson.M, limit int64) ([]models.Suggestion, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0, "title": 1, "type": 1, "category": 1}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, predicate, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Suggestion, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetActive returns an active opportunity by id.
func (s *Store) GetActive(ctx context.Context, id primitive.ObjectID) (models.Opportunity, error) {
	var o models.Opportunity
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": models.StatusActive}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Opportunity{}, ErrNotFound
	}
	if err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}

// IncrementViews bumps the view counter. Concurrent increments are not
// coordinated beyond the single-document $inc; views are approximate.
func (s *Store) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CloseExpired moves active opportunities whose application deadline is
// before now to closed. It returns the number of documents changed.
func (s *Store) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status":               models.StatusActive,
		"application_deadline": bson.M{"$lt": now},
	}
	update := bson.M{"$set": bson.M{
		"status":     models.StatusClosed,
		"updated_at": now,
	}}
	res, err := s.c.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
