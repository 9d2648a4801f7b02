package filter

import (
	"encoding/json"
	"net/url"
	"reflect"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	m := Default()
	if m.Query != "" || !m.Filters.IsEmpty() {
		t.Errorf("Default() has query or facets set: %+v", m)
	}
	if m.SortBy != SortNewest || m.SortOrder != Desc {
		t.Errorf("Default() sort = %s %s, want newest desc", m.SortBy, m.SortOrder)
	}
	if m.Page != 1 || m.Limit != 20 {
		t.Errorf("Default() page/limit = %d/%d, want 1/20", m.Page, m.Limit)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Model
		wantSort  SortBy
		wantOrder SortOrder
		wantPage  int
		wantLimit int
	}{
		{"defaults untouched", Default(), SortNewest, Desc, 1, 20},
		{"unknown sort falls back to newest desc", Model{SortBy: "random", SortOrder: Asc, Page: 2, Limit: 10}, SortNewest, Desc, 2, 10},
		{"unknown order falls back to desc", Model{SortBy: SortStipend, SortOrder: "sideways", Page: 1, Limit: 10}, SortStipend, Desc, 1, 10},
		{"asc kept", Model{SortBy: SortDeadline, SortOrder: Asc, Page: 1, Limit: 10}, SortDeadline, Asc, 1, 10},
		{"page below one", Model{SortBy: SortNewest, SortOrder: Desc, Page: -3, Limit: 10}, SortNewest, Desc, 1, 10},
		{"page above max", Model{SortBy: SortNewest, SortOrder: Desc, Page: MaxPage + 1, Limit: 10}, SortNewest, Desc, MaxPage, 10},
		{"limit zero means default", Model{SortBy: SortNewest, SortOrder: Desc, Page: 1}, SortNewest, Desc, 1, 20},
		{"limit clamped", Model{SortBy: SortNewest, SortOrder: Desc, Page: 1, Limit: 500}, SortNewest, Desc, 1, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.SortBy != tt.wantSort || got.SortOrder != tt.wantOrder {
				t.Errorf("sort = %s %s, want %s %s", got.SortBy, got.SortOrder, tt.wantSort, tt.wantOrder)
			}
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("page/limit = %d/%d, want %d/%d", got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	m := Default()
	m.Page = 3
	m.Limit = 15
	if got := m.Skip(); got != 30 {
		t.Errorf("Skip() = %d, want 30", got)
	}

	huge := FromValues(url.Values{"page": {"9223372036854775807"}, "limit": {"50"}})
	if huge.Page != MaxPage {
		t.Errorf("Page = %d, want clamped to %d", huge.Page, MaxPage)
	}
	if got, want := huge.Skip(), int64(MaxPage-1)*MaxLimit; got != want {
		t.Errorf("Skip() = %d, want %d", got, want)
	}
}

func TestFromValues_CoercesMalformedToUnset(t *testing.T) {
	v := url.Values{}
	v.Set("startDate", "not-a-date")
	v.Set("endDate", "2024-13-45")
	v.Set("minStipend", "lots")
	v.Set("maxStipend", "-5")
	v.Set("remote", "yes")
	v.Set("page", "two")
	v.Set("limit", "abc")
	v.Set("skills", " , ,")

	m := FromValues(v)
	if !m.Filters.IsEmpty() {
		t.Errorf("expected all facets unset, got %+v", m.Filters)
	}
	if m.Page != 1 || m.Limit != 20 {
		t.Errorf("page/limit = %d/%d, want 1/20", m.Page, m.Limit)
	}
}

func TestFromValues_ParsesFacets(t *testing.T) {
	v := url.Values{}
	v.Set("search", "  data  ")
	v.Set("type", "internship")
	v.Set("state", "Lagos")
	v.Set("remote", "true")
	v.Set("minStipend", "50000")
	v.Set("startDate", "2024-05-01")
	v.Set("endDate", "2024-05-31")
	v.Set("skills", "go, sql,go,")
	v.Set("sortBy", "stipend")
	v.Set("sortOrder", "asc")
	v.Set("page", "2")
	v.Set("limit", "10")

	m := FromValues(v)
	if m.Query != "data" {
		t.Errorf("Query = %q, want %q", m.Query, "data")
	}
	if m.Filters.Type != "internship" || m.Filters.State != "Lagos" || !m.Filters.Remote {
		t.Errorf("unexpected facets %+v", m.Filters)
	}
	if m.Filters.MinStipend == nil || *m.Filters.MinStipend != 50000 {
		t.Errorf("MinStipend = %v, want 50000", m.Filters.MinStipend)
	}
	wantStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if m.Filters.StartDate == nil || !m.Filters.StartDate.Equal(wantStart) {
		t.Errorf("StartDate = %v, want %v", m.Filters.StartDate, wantStart)
	}
	wantEnd := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	if m.Filters.EndDate == nil || !m.Filters.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", m.Filters.EndDate, wantEnd)
	}
	if !reflect.DeepEqual(m.Filters.Skills, []string{"go", "sql"}) {
		t.Errorf("Skills = %v, want [go sql]", m.Filters.Skills)
	}
	if m.SortBy != SortStipend || m.SortOrder != Asc || m.Page != 2 || m.Limit != 10 {
		t.Errorf("sort/paging = %s %s %d %d", m.SortBy, m.SortOrder, m.Page, m.Limit)
	}
}

func TestFromValues_QueryAlias(t *testing.T) {
	m := FromValues(url.Values{"query": {"nurse"}})
	if m.Query != "nurse" {
		t.Errorf("Query = %q, want nurse", m.Query)
	}
}

func TestValues_OmitsUnsetFacets(t *testing.T) {
	v := Default().Values()
	for _, key := range []string{KeySearch, KeyType, KeyRemote, KeySkills, KeyMinStipend, KeyStartDate} {
		if v.Has(key) {
			t.Errorf("expected %q to be omitted, got %q", key, v.Get(key))
		}
	}
	if v.Get(KeySortBy) != "newest" || v.Get(KeySortOrder) != "desc" || v.Get(KeyPage) != "1" || v.Get(KeyLimit) != "20" {
		t.Errorf("sort/paging keys missing: %v", v)
	}
}

func TestValues_RoundTrip(t *testing.T) {
	min := 1000.0
	m := Default()
	m.Query = "farm"
	m.Filters.Category = "agriculture"
	m.Filters.Remote = true
	m.Filters.MinStipend = &min
	m.Filters.Skills = []string{"driving", "farming"}
	m.Filters.StartDate = ParseDate("2024-01-01", false)
	m.Filters.EndDate = ParseDate("2024-02-01", true)
	m.Page = 4

	v := m.Values()
	if v.Get(KeySkills) != "driving,farming" {
		t.Errorf("skills = %q, want comma-joined", v.Get(KeySkills))
	}
	if v.Get(KeyRemote) != "true" {
		t.Errorf("remote = %q, want literal true", v.Get(KeyRemote))
	}

	back := FromValues(v)
	if !reflect.DeepEqual(back, m.Normalize()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, m.Normalize())
	}
}

func TestSnapshot_FromSnapshotMergesIntoDefaults(t *testing.T) {
	snap := Snapshot{
		Query:   "clinic",
		Filters: Filters{Category: "health"},
	}
	m := FromSnapshot(snap)
	if m.SortBy != SortNewest || m.SortOrder != Desc || m.Page != 1 || m.Limit != 20 {
		t.Errorf("missing keys should come from defaults, got %+v", m)
	}
	if m.Query != "clinic" || m.Filters.Category != "health" || m.Filters.Type != "" {
		t.Errorf("unexpected model %+v", m)
	}

	again := FromSnapshot(m.Snapshot())
	if !reflect.DeepEqual(again, m) {
		t.Errorf("snapshot round trip mismatch:\n got %+v\nwant %+v", again, m)
	}
}

func TestFilters_UnmarshalJSON_Lenient(t *testing.T) {
	body := `{
		"type": "volunteer",
		"remote": "true",
		"minStipend": "2500",
		"maxStipend": "n/a",
		"startDate": "2024-03-01",
		"endDate": 42,
		"skills": "first aid, teaching"
	}`
	var f Filters
	if err := json.Unmarshal([]byte(body), &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if f.Type != "volunteer" || !f.Remote {
		t.Errorf("unexpected facets %+v", f)
	}
	if f.MinStipend == nil || *f.MinStipend != 2500 {
		t.Errorf("MinStipend = %v, want 2500", f.MinStipend)
	}
	if f.MaxStipend != nil || f.EndDate != nil {
		t.Errorf("malformed values should be unset, got max=%v end=%v", f.MaxStipend, f.EndDate)
	}
	if !reflect.DeepEqual(f.Skills, []string{"first aid", "teaching"}) {
		t.Errorf("Skills = %v", f.Skills)
	}
}

func TestFilters_UnmarshalJSON_RejectsNonObject(t *testing.T) {
	var f Filters
	if err := json.Unmarshal([]byte(`["type"]`), &f); err == nil {
		t.Error("expected error for non-object filters")
	}
}

func TestClone_IsDeep(t *testing.T) {
	f := Filters{Skills: []string{"a"}}
	c := f.Clone()
	c.Skills[0] = "b"
	if f.Skills[0] != "a" {
		t.Error("Clone shares the skills slice")
	}
}

func TestSnapshot_UnmarshalJSON_Nested(t *testing.T) {
	min := 500.0
	m := Default()
	m.Query = "tutor"
	m.Filters.Category = "education"
	m.Filters.MinStipend = &min
	m.SortBy = SortDeadline
	m.SortOrder = Asc

	b, err := json.Marshal(m.Snapshot())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Snapshot
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(FromSnapshot(got), m.Normalize()) {
		t.Errorf("nested snapshot mismatch:\n got %+v\nwant %+v", FromSnapshot(got), m.Normalize())
	}
}

func TestSnapshot_UnmarshalJSON_Flat(t *testing.T) {
	body := `{"search": "farm", "type": "volunteer", "remote": true, "sortBy": "popularity"}`
	var got Snapshot
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Query != "farm" || got.Filters.Type != "volunteer" || !got.Filters.Remote || got.SortBy != SortPopularity {
		t.Errorf("flat snapshot = %+v", got)
	}
	if got.SortOrder != "" {
		t.Errorf("SortOrder = %q, want unset", got.SortOrder)
	}
}
