// internal/app/store/savedsearches/savedsearchstore.go
package savedsearchstore

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding saved searches.
const Collection = "saved_searches"

const (
	// MaxNameLength is the longest accepted name, in runes, after cleaning.
	MaxNameLength = 100
	// ListLimit caps how many saved searches ListActive returns.
	ListLimit = 20
)

var (
	// ErrNotFound is returned when a saved search does not exist, belongs to
	// someone else or was already deleted.
	ErrNotFound = errors.New("saved search not found")
	// ErrInvalidName is returned for empty or overlong names.
	ErrInvalidName = errors.New("saved search name must be 1-100 characters")
)

var policy = bluemonday.StrictPolicy()

// Store persists saved searches.
type Store struct {
	c *mongo.Collection
}

// New creates a saved-search store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// CleanName strips markup and surrounding space from a user-supplied name
// and validates its length. The result is plain text: entities the
// sanitizer emits are decoded again, so "R&D" stays "R&D".
func CleanName(name string) (string, error) {
	cleaned := strings.TrimSpace(html.UnescapeString(policy.Sanitize(name)))
	n := utf8.RuneCountInString(cleaned)
	if n == 0 || n > MaxNameLength {
		return "", ErrInvalidName
	}
	return cleaned, nil
}

// Create stores a new active saved search. Names need not be unique.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, name string, snap filter.Snapshot) (models.SavedSearch, error) {
	cleaned, err := CleanName(name)
	if err != nil {
		return models.SavedSearch{}, err
	}

	now := time.Now().UTC()
	ss := models.SavedSearch{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      cleaned,
		Filters:   snap,
		IsActive:  true,
		LastUsed:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, ss); err != nil {
		return models.SavedSearch{}, err
	}
	return ss, nil
}

// ListActive returns the user's active saved searches, newest first.
func (s *Store) ListActive(ctx context.Context, userID primitive.ObjectID) ([]models.SavedSearch, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(ListLimit)

	cur, err := s.c.Find(ctx, bson.M{"user_id": userID, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.SavedSearch, 0, ListLimit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete marks the user's saved search inactive. A malformed id, an id
// owned by another user or an already deleted search all yield ErrNotFound.
func (s *Store) SoftDelete(ctx context.Context, userID primitive.ObjectID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
