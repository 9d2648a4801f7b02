package models

import (
	"time"

	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedSearch is a named filter snapshot owned by one user. Deleting a saved
// search clears IsActive; the document itself is kept.
type SavedSearch struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Filters   filter.Snapshot    `bson:"filters" json:"filters"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	LastUsed  time.Time          `bson:"last_used" json:"lastUsed"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
