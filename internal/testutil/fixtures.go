package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// OpportunityOption customizes an opportunity before it is inserted.
type OpportunityOption func(*models.Opportunity)

// WithType sets the opportunity type.
func WithType(typ string) OpportunityOption {
	return func(o *models.Opportunity) { o.Type = typ }
}

// WithCategory sets the opportunity category.
func WithCategory(c string) OpportunityOption {
	return func(o *models.Opportunity) { o.Category = c }
}

// WithStatus sets the opportunity status.
func WithStatus(s string) OpportunityOption {
	return func(o *models.Opportunity) { o.Status = s }
}

// WithLocation sets state, LGA and the remote flag.
func WithLocation(state, lga string, remote bool) OpportunityOption {
	return func(o *models.Opportunity) {
		o.Location.State = state
		o.Location.LGA = lga
		o.Location.IsRemote = remote
	}
}

// WithStipend sets a stipend amount in NGN.
func WithStipend(amount float64) OpportunityOption {
	return func(o *models.Opportunity) {
		o.Benefits.Stipend = &models.Stipend{Amount: amount, Currency: "NGN"}
	}
}

// WithSkills sets the required skills.
func WithSkills(skills ...string) OpportunityOption {
	return func(o *models.Opportunity) { o.Requirements.Skills = skills }
}

// WithDescription sets the description.
func WithDescription(d string) OpportunityOption {
	return func(o *models.Opportunity) { o.Description = d }
}

// WithOrganization sets the denormalized organization name.
func WithOrganization(name string) OpportunityOption {
	return func(o *models.Opportunity) { o.OrganizationName = name }
}

// WithViews sets the view counter.
func WithViews(n int64) OpportunityOption {
	return func(o *models.Opportunity) { o.Views = n }
}

// WithDeadline sets the application deadline.
func WithDeadline(t time.Time) OpportunityOption {
	return func(o *models.Opportunity) { o.ApplicationDeadline = &t }
}

// WithDates sets the start and end dates.
func WithDates(start, end time.Time) OpportunityOption {
	return func(o *models.Opportunity) {
		o.StartDate = &start
		o.EndDate = &end
	}
}

// WithCreatedAt overrides the creation time.
func WithCreatedAt(t time.Time) OpportunityOption {
	return func(o *models.Opportunity) { o.CreatedAt = t }
}

// CreateOpportunity inserts an active opportunity with the given title.
func (f *Fixtures) CreateOpportunity(ctx context.Context, title string, opts ...OpportunityOption) models.Opportunity {
	f.t.Helper()

	now := time.Now().UTC()
	o := models.Opportunity{
		ID:               primitive.NewObjectID(),
		Title:            title,
		Description:      "Test opportunity description",
		OrganizationID:   primitive.NewObjectID(),
		OrganizationName: "Test Organization",
		Type:             models.TypeInternship,
		Category:         "technology",
		Location:         models.Location{State: "Lagos", LGA: "Ikeja"},
		Status:           models.StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := f.db.Collection("opportunities").InsertOne(ctx, o); err != nil {
		f.t.Fatalf("failed to create test opportunity: %v", err)
	}
	return o
}

// CreateSavedSearch inserts an active saved search for userID.
func (f *Fixtures) CreateSavedSearch(ctx context.Context, userID primitive.ObjectID, name string, snap filter.Snapshot) models.SavedSearch {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.SavedSearch{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      name,
		Filters:   snap,
		IsActive:  true,
		LastUsed:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("saved_searches").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test saved search: %v", err)
	}
	return s
}
