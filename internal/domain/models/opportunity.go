// internal/domain/models/opportunity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Opportunity statuses. Only StatusActive is ever visible through search.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusClosed    = "closed"
	StatusCancelled = "cancelled"
)

// Opportunity types.
const (
	TypeInternship = "internship"
	TypeVolunteer  = "volunteer"
)

// Categories lists the category values accepted by the listing endpoint.
var Categories = []string{
	"technology", "health", "education", "agriculture",
	"business", "environment", "arts", "sports",
}

// Opportunity is an internship or volunteer listing. The search subsystem
// treats it as read-only apart from the view counter and the expiry sweep.
//
// OrganizationName is denormalised from the owning organization so that the
// text query can match it without a join.
type Opportunity struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	OrganizationID   primitive.ObjectID `bson:"organization_id" json:"organizationId"`
	OrganizationName string             `bson:"organization_name" json:"organizationName"`

	Type     string `bson:"type" json:"type"`         // internship | volunteer
	Category string `bson:"category" json:"category"` // see Categories

	Requirements Requirements `bson:"requirements" json:"requirements"`
	Location     Location     `bson:"location" json:"location"`

	StartDate           *time.Time `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate             *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
	ApplicationDeadline *time.Time `bson:"application_deadline,omitempty" json:"applicationDeadline,omitempty"`

	Benefits Benefits `bson:"benefits" json:"benefits"`

	Status string `bson:"status" json:"status"`
	Views  int64  `bson:"views" json:"views"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Requirements describes who an opportunity is aimed at.
type Requirements struct {
	Education  string   `bson:"education,omitempty" json:"education,omitempty"`   // none | primary | secondary | tertiary | any
	Experience string   `bson:"experience,omitempty" json:"experience,omitempty"` // none | beginner | intermediate | advanced
	Skills     []string `bson:"skills,omitempty" json:"skills,omitempty"`
}

// Location is where the opportunity takes place.
type Location struct {
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	LGA      string `bson:"lga,omitempty" json:"lga,omitempty"`
	Town     string `bson:"town,omitempty" json:"town,omitempty"`
	IsRemote bool   `bson:"is_remote" json:"isRemote"`
}

// Benefits carries the optional stipend. A nil Stipend means "no stipend
// record", which range-filtered searches exclude.
type Benefits struct {
	Stipend     *Stipend `bson:"stipend,omitempty" json:"stipend,omitempty"`
	Certificate bool     `bson:"certificate" json:"certificate"`
	Mentorship  bool     `bson:"mentorship" json:"mentorship"`
}

// Stipend is a monetary allowance.
type Stipend struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

// Suggestion is the projection returned by the suggestions endpoint.
type Suggestion struct {
	Title    string `bson:"title" json:"title"`
	Type     string `bson:"type" json:"type"`
	Category string `bson:"category" json:"category"`
}
