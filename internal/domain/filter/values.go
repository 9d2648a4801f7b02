// internal/domain/filter/values.go
package filter

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Querystring keys. The text query travels as "search"; "query" is accepted
// as an alias when parsing.
const (
	KeySearch     = "search"
	KeyQuery      = "query"
	KeyType       = "type"
	KeyCategory   = "category"
	KeyState      = "state"
	KeyLGA        = "lga"
	KeyRemote     = "remote"
	KeyStartDate  = "startDate"
	KeyEndDate    = "endDate"
	KeyMinStipend = "minStipend"
	KeyMaxStipend = "maxStipend"
	KeyEducation  = "education"
	KeyExperience = "experience"
	KeySkills     = "skills"
	KeySortBy     = "sortBy"
	KeySortOrder  = "sortOrder"
	KeyPage       = "page"
	KeyLimit      = "limit"
)

const dateOnly = "2006-01-02"

// ParseDate coerces s into a date bound. It accepts RFC 3339 timestamps and
// YYYY-MM-DD dates; anything else yields nil. When endOfDay is set, a
// date-only value is moved to the last instant of that day so that an upper
// bound includes the whole day.
func ParseDate(s string, endOfDay bool) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t = t.UTC()
		return &t
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}

// ParseAmount coerces s into a positive stipend bound, or nil.
func ParseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

// SplitSkills splits a comma-joined skills parameter.
func SplitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return normalizeSkills(strings.Split(s, ","))
}

// FromValues parses a search querystring. It never fails: values that
// cannot be coerced are treated as unset.
func FromValues(v url.Values) Model {
	m := Default()

	m.Query = v.Get(KeySearch)
	if strings.TrimSpace(m.Query) == "" {
		m.Query = v.Get(KeyQuery)
	}

	m.Filters = Filters{
		Type:       v.Get(KeyType),
		Category:   v.Get(KeyCategory),
		State:      v.Get(KeyState),
		LGA:        v.Get(KeyLGA),
		Remote:     v.Get(KeyRemote) == "true",
		StartDate:  ParseDate(v.Get(KeyStartDate), false),
		EndDate:    ParseDate(v.Get(KeyEndDate), true),
		MinStipend: ParseAmount(v.Get(KeyMinStipend)),
		MaxStipend: ParseAmount(v.Get(KeyMaxStipend)),
		Education:  v.Get(KeyEducation),
		Experience: v.Get(KeyExperience),
		Skills:     SplitSkills(v.Get(KeySkills)),
	}

	if s := strings.TrimSpace(v.Get(KeySortBy)); s != "" {
		m.SortBy = SortBy(s)
	}
	if s := strings.TrimSpace(v.Get(KeySortOrder)); s != "" {
		m.SortOrder = SortOrder(s)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Get(KeyPage))); err == nil {
		m.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Get(KeyLimit))); err == nil {
		m.Limit = n
	}
	return m.Normalize()
}

// Values encodes the model as a querystring. Only set facets are emitted;
// skills are comma-joined and remote is sent as the literal "true". Sort and
// paging keys are always present.
func (m Model) Values() url.Values {
	n := m.Normalize()
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}

	set(KeySearch, n.Query)
	f := n.Filters
	set(KeyType, f.Type)
	set(KeyCategory, f.Category)
	set(KeyState, f.State)
	set(KeyLGA, f.LGA)
	if f.Remote {
		v.Set(KeyRemote, "true")
	}
	if f.StartDate != nil {
		v.Set(KeyStartDate, formatDate(*f.StartDate))
	}
	if f.EndDate != nil {
		v.Set(KeyEndDate, formatDate(*f.EndDate))
	}
	if f.MinStipend != nil {
		v.Set(KeyMinStipend, strconv.FormatFloat(*f.MinStipend, 'f', -1, 64))
	}
	if f.MaxStipend != nil {
		v.Set(KeyMaxStipend, strconv.FormatFloat(*f.MaxStipend, 'f', -1, 64))
	}
	set(KeyEducation, f.Education)
	set(KeyExperience, f.Experience)
	if len(f.Skills) > 0 {
		v.Set(KeySkills, strings.Join(f.Skills, ","))
	}

	v.Set(KeySortBy, string(n.SortBy))
	v.Set(KeySortOrder, string(n.SortOrder))
	v.Set(KeyPage, strconv.Itoa(n.Page))
	v.Set(KeyLimit, strconv.Itoa(n.Limit))
	return v
}

// formatDate writes midnight values as plain dates and everything else as
// RFC 3339 so that end-of-day bounds survive a round trip.
func formatDate(t time.Time) string {
	t = t.UTC()
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return t.Format(dateOnly)
	}
	return t.Format(time.RFC3339Nano)
}

// UnmarshalJSON decodes facets leniently: numbers may arrive as strings,
// dates as YYYY-MM-DD or RFC 3339, remote as a bool or "true", and skills as
// an array or a comma-joined string. Values that fail coercion are dropped.
// Only a body that is not a JSON object is an error.
func (f *Filters) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("filters: %w", err)
	}
	*f = Filters{
		Type:       asString(raw[KeyType]),
		Category:   asString(raw[KeyCategory]),
		State:      asString(raw[KeyState]),
		LGA:        asString(raw[KeyLGA]),
		Remote:     asBool(raw[KeyRemote]),
		StartDate:  ParseDate(asString(raw[KeyStartDate]), false),
		EndDate:    ParseDate(asString(raw[KeyEndDate]), true),
		MinStipend: asAmount(raw[KeyMinStipend]),
		MaxStipend: asAmount(raw[KeyMaxStipend]),
		Education:  asString(raw[KeyEducation]),
		Experience: asString(raw[KeyExperience]),
		Skills:     asStrings(raw[KeySkills]),
	}
	*f = f.Normalize()
	return nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}

func asAmount(v any) *float64 {
	switch t := v.(type) {
	case float64:
		if t > 0 {
			return &t
		}
	case string:
		return ParseAmount(t)
	}
	return nil
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return SplitSkills(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return normalizeSkills(out)
	}
	return nil
}

// UnmarshalJSON accepts a snapshot either nested, as produced by
// Model.Snapshot ({"query", "filters": {...}, "sortBy", "sortOrder"}), or
// flat, with facets at the top level and the text under "search" or
// "query".
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	var out Snapshot
	facets := b
	if nested, ok := raw["filters"]; ok {
		facets = nested
	}
	if err := json.Unmarshal(facets, &out.Filters); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	out.Query = rawString(raw[KeyQuery])
	if out.Query == "" {
		out.Query = rawString(raw[KeySearch])
	}
	out.SortBy = SortBy(rawString(raw[KeySortBy]))
	out.SortOrder = SortOrder(rawString(raw[KeySortOrder]))
	*s = out
	return nil
}

func rawString(m json.RawMessage) string {
	if len(m) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(m, &v); err != nil {
		return ""
	}
	return asString(v)
}
