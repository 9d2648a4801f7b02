// internal/app/search/compiler/compiler.go

// Package compiler translates a filter.Model into a MongoDB predicate, sort
// and skip/limit window for the opportunities collection.
//
// Compilation is pure and never fails. Facets that are unset after
// normalisation add no predicate; the base predicate always restricts
// results to active opportunities.
package compiler

import (
	"regexp"

	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Field paths in the opportunities collection.
const (
	FieldStatus      = "status"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldOrgName     = "organization_name"
	FieldType        = "type"
	FieldCategory    = "category"
	FieldState       = "location.state"
	FieldLGA         = "location.lga"
	FieldRemote      = "location.is_remote"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldStipend     = "benefits.stipend.amount"
	FieldEducation   = "requirements.education"
	FieldExperience  = "requirements.experience"
	FieldSkills      = "requirements.skills"
	FieldCreatedAt   = "created_at"
	FieldDeadline    = "application_deadline"
	FieldViews       = "views"
	FieldID          = "_id"
)

// Suggestion limits.
const (
	SuggestionLimit     = 10
	MinSuggestionLength = 2 // runes, after trimming
)

// Query is a compiled search.
type Query struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64
}

// Compile builds the full search query for m.
func Compile(m filter.Model) Query {
	n := m.Normalize()
	f := bson.M{FieldStatus: models.StatusActive}

	if n.Query != "" {
		f["$or"] = textMatch(n.Query, FieldTitle, FieldDescription, FieldOrgName)
	}

	fs := n.Filters
	eq(f, FieldType, fs.Type)
	eq(f, FieldCategory, fs.Category)
	eq(f, FieldState, fs.State)
	eq(f, FieldLGA, fs.LGA)
	eq(f, FieldEducation, fs.Education)
	eq(f, FieldExperience, fs.Experience)

	// Remote only ever narrows; false is indistinguishable from unset.
	if fs.Remote {
		f[FieldRemote] = true
	}

	if fs.StartDate != nil {
		f[FieldStartDate] = bson.M{"$gte": *fs.StartDate}
	}
	if fs.EndDate != nil {
		f[FieldEndDate] = bson.M{"$lte": *fs.EndDate}
	}

	if fs.MinStipend != nil || fs.MaxStipend != nil {
		r := bson.M{}
		if fs.MinStipend != nil {
			r["$gte"] = *fs.MinStipend
		}
		if fs.MaxStipend != nil {
			r["$lte"] = *fs.MaxStipend
		}
		f[FieldStipend] = r
	}

	if len(fs.Skills) > 0 {
		f[FieldSkills] = bson.M{"$in": fs.Skills}
	}

	return Query{
		Filter: f,
		Sort:   SortFor(n.SortBy, n.SortOrder),
		Skip:   n.Skip(),
		Limit:  int64(n.Limit),
	}
}

// CompileListing builds the query used by the plain listing endpoint. It
// honours only the text query and the type, category, state, lga, remote
// and startDate facets, and always sorts newest first.
func CompileListing(m filter.Model) Query {
	n := m.Normalize()
	narrowed := filter.Default()
	narrowed.Query = n.Query
	narrowed.Filters = filter.Filters{
		Type:      n.Filters.Type,
		Category:  n.Filters.Category,
		State:     n.Filters.State,
		LGA:       n.Filters.LGA,
		Remote:    n.Filters.Remote,
		StartDate: n.Filters.StartDate,
	}
	narrowed.Page = n.Page
	narrowed.Limit = n.Limit
	return Compile(narrowed)
}

// CompileSuggest builds the predicate for title/description suggestions.
func CompileSuggest(prefix string) bson.M {
	return bson.M{
		FieldStatus: models.StatusActive,
		"$or":       textMatch(prefix, FieldTitle, FieldDescription),
	}
}

// SortFor maps a sort key and direction onto document fields. An _id
// tie-breaker in the same direction keeps skip/limit paging stable.
func SortFor(by filter.SortBy, order filter.SortOrder) bson.D {
	dir := -1
	if order == filter.Asc {
		dir = 1
	}
	field := FieldCreatedAt
	switch by {
	case filter.SortDeadline:
		field = FieldDeadline
	case filter.SortStipend:
		field = FieldStipend
	case filter.SortPopularity:
		field = FieldViews
	case filter.SortNewest:
	default:
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}, {Key: FieldID, Value: dir}}
}

func eq(f bson.M, field, value string) {
	if value != "" {
		f[field] = value
	}
}

// textMatch is a case-insensitive substring match of term across fields.
// The term is escaped, so regex metacharacters match literally.
func textMatch(term string, fields ...string) []bson.M {
	pattern := regexp.QuoteMeta(term)
	or := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return or
}
