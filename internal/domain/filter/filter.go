// internal/domain/filter/filter.go

// Package filter defines the Filter Model shared by the search API and its
// clients: a free-text query, a fixed set of facets, a sort order and a page
// cursor.
//
// The schema is closed. Every facet has a concrete Go type (text, enum,
// boolean, numeric range, date range or string set), so the query compiler
// never inspects values reflectively. A facet holding its zero value (empty
// string, false, nil bound, empty set) is "not set" and must not constrain a
// query.
package filter

import (
	"slices"
	"strings"
	"time"
)

// SortBy selects the field results are ordered by.
type SortBy string

const (
	SortNewest     SortBy = "newest"
	SortDeadline   SortBy = "deadline"
	SortStipend    SortBy = "stipend"
	SortPopularity SortBy = "popularity"
)

// Valid reports whether s is one of the known sort keys.
func (s SortBy) Valid() bool {
	switch s {
	case SortNewest, SortDeadline, SortStipend, SortPopularity:
		return true
	}
	return false
}

// SortOrder is the sort direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Paging bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 50

	// MaxPage keeps (page-1)*limit well inside int64 on every platform.
	MaxPage = 1_000_000_000
)

// Filters holds the faceted part of a search.
type Filters struct {
	Type     string `bson:"type,omitempty" json:"type,omitempty"`
	Category string `bson:"category,omitempty" json:"category,omitempty"`
	State    string `bson:"state,omitempty" json:"state,omitempty"`
	LGA      string `bson:"lga,omitempty" json:"lga,omitempty"`

	// Remote constrains only when true. There is no "on-site only" filter.
	Remote bool `bson:"remote,omitempty" json:"remote,omitempty"`

	StartDate *time.Time `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`

	MinStipend *float64 `bson:"min_stipend,omitempty" json:"minStipend,omitempty"`
	MaxStipend *float64 `bson:"max_stipend,omitempty" json:"maxStipend,omitempty"`

	Education  string `bson:"education,omitempty" json:"education,omitempty"`
	Experience string `bson:"experience,omitempty" json:"experience,omitempty"`

	// Skills match by intersection: any shared skill is enough.
	Skills []string `bson:"skills,omitempty" json:"skills,omitempty"`
}

// Normalize trims text facets, drops empty or duplicate skills and clears
// stipend bounds that are not positive.
func (f Filters) Normalize() Filters {
	out := f.Clone()
	out.Type = strings.TrimSpace(out.Type)
	out.Category = strings.TrimSpace(out.Category)
	out.State = strings.TrimSpace(out.State)
	out.LGA = strings.TrimSpace(out.LGA)
	out.Education = strings.TrimSpace(out.Education)
	out.Experience = strings.TrimSpace(out.Experience)
	out.Skills = normalizeSkills(out.Skills)
	if out.MinStipend != nil && *out.MinStipend <= 0 {
		out.MinStipend = nil
	}
	if out.MaxStipend != nil && *out.MaxStipend <= 0 {
		out.MaxStipend = nil
	}
	return out
}

// IsEmpty reports whether no facet is set.
func (f Filters) IsEmpty() bool {
	n := f.Normalize()
	return n.Type == "" && n.Category == "" && n.State == "" && n.LGA == "" &&
		!n.Remote && n.StartDate == nil && n.EndDate == nil &&
		n.MinStipend == nil && n.MaxStipend == nil &&
		n.Education == "" && n.Experience == "" && len(n.Skills) == 0
}

// Clone returns a deep copy so callers can mutate the result freely.
func (f Filters) Clone() Filters {
	out := f
	out.StartDate = cloneTime(f.StartDate)
	out.EndDate = cloneTime(f.EndDate)
	out.MinStipend = cloneFloat(f.MinStipend)
	out.MaxStipend = cloneFloat(f.MaxStipend)
	out.Skills = slices.Clone(f.Skills)
	return out
}

// Model is the complete search intent.
type Model struct {
	Query     string    `json:"query"`
	Filters   Filters   `json:"filters"`
	SortBy    SortBy    `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`
}

// Default returns the initial search state: no query, no facets, newest
// first, first page of 20.
func Default() Model {
	return Model{
		SortBy:    SortNewest,
		SortOrder: Desc,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}

// Normalize coerces every field into its valid range. Unknown sort keys fall
// back to newest/desc, an unknown direction falls back to desc, the page is
// clamped to 1..MaxPage and the limit to 1..MaxLimit (zero or negative
// means the default).
func (m Model) Normalize() Model {
	out := m
	out.Query = strings.TrimSpace(m.Query)
	out.Filters = m.Filters.Normalize()

	if !out.SortBy.Valid() {
		out.SortBy = SortNewest
		out.SortOrder = Desc
	}
	if out.SortOrder != Asc && out.SortOrder != Desc {
		out.SortOrder = Desc
	}
	switch {
	case out.Page < 1:
		out.Page = DefaultPage
	case out.Page > MaxPage:
		out.Page = MaxPage
	}
	switch {
	case out.Limit < 1:
		out.Limit = DefaultLimit
	case out.Limit > MaxLimit:
		out.Limit = MaxLimit
	}
	return out
}

// Clone returns a deep copy of m.
func (m Model) Clone() Model {
	out := m
	out.Filters = m.Filters.Clone()
	return out
}

// Skip is the number of documents preceding the current page.
func (m Model) Skip() int64 {
	n := m.Normalize()
	return int64(n.Page-1) * int64(n.Limit)
}

// Snapshot is the persisted form of a search: the model without paging.
type Snapshot struct {
	Query     string    `bson:"query,omitempty" json:"query"`
	Filters   Filters   `bson:"filters" json:"filters"`
	SortBy    SortBy    `bson:"sort_by,omitempty" json:"sortBy,omitempty"`
	SortOrder SortOrder `bson:"sort_order,omitempty" json:"sortOrder,omitempty"`
}

// Snapshot freezes the model for saving.
func (m Model) Snapshot() Snapshot {
	n := m.Normalize()
	return Snapshot{
		Query:     n.Query,
		Filters:   n.Filters,
		SortBy:    n.SortBy,
		SortOrder: n.SortOrder,
	}
}

// FromSnapshot rebuilds a model from a saved snapshot. Anything the snapshot
// does not carry comes from Default, never from a previous live state.
func FromSnapshot(s Snapshot) Model {
	m := Default()
	m.Query = s.Query
	m.Filters = s.Filters.Clone()
	if s.SortBy != "" {
		m.SortBy = s.SortBy
	}
	if s.SortOrder != "" {
		m.SortOrder = s.SortOrder
	}
	return m.Normalize()
}

func normalizeSkills(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
