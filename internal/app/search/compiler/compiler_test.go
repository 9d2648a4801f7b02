package compiler

import (
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCompile_EmptyModelIsActiveOnly(t *testing.T) {
	empties := []filter.Model{
		filter.Default(),
		{Filters: filter.Filters{Remote: false, Skills: []string{}}},
		{Query: "   ", Filters: filter.Filters{Type: " ", Skills: []string{"", " "}}},
	}
	for i, m := range empties {
		q := Compile(m)
		want := bson.M{"status": "active"}
		if !reflect.DeepEqual(q.Filter, want) {
			t.Errorf("case %d: Filter = %v, want %v", i, q.Filter, want)
		}
	}
}

func TestCompile_TextQuery(t *testing.T) {
	m := filter.Default()
	m.Query = "c++ dev"
	q := Compile(m)

	or, ok := q.Filter["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("$or = %v, want 3 clauses", q.Filter["$or"])
	}
	fields := []string{FieldTitle, FieldDescription, FieldOrgName}
	for i, clause := range or {
		cond, ok := clause[fields[i]].(bson.M)
		if !ok {
			t.Fatalf("clause %d missing field %s: %v", i, fields[i], clause)
		}
		if cond["$regex"] != `c\+\+ dev` || cond["$options"] != "i" {
			t.Errorf("clause %d = %v, want escaped case-insensitive regex", i, cond)
		}
	}
}

func TestCompile_EqualityFacets(t *testing.T) {
	m := filter.Default()
	m.Filters = filter.Filters{
		Type:       "internship",
		Category:   "technology",
		State:      "Lagos",
		LGA:        "Ikeja",
		Education:  "tertiary",
		Experience: "beginner",
	}
	q := Compile(m)
	want := bson.M{
		"status":                  "active",
		"type":                    "internship",
		"category":                "technology",
		"location.state":          "Lagos",
		"location.lga":            "Ikeja",
		"requirements.education":  "tertiary",
		"requirements.experience": "beginner",
	}
	if !reflect.DeepEqual(q.Filter, want) {
		t.Errorf("Filter = %v, want %v", q.Filter, want)
	}
}

func TestCompile_RemoteOnlyWhenTrue(t *testing.T) {
	m := filter.Default()
	if _, ok := Compile(m).Filter[FieldRemote]; ok {
		t.Error("remote=false must not constrain")
	}
	m.Filters.Remote = true
	if v := Compile(m).Filter[FieldRemote]; v != true {
		t.Errorf("remote predicate = %v, want true", v)
	}
}

func TestCompile_Ranges(t *testing.T) {
	min, max := 50000.0, 90000.0
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	m := filter.Default()
	m.Filters.MinStipend = &min
	m.Filters.MaxStipend = &max
	m.Filters.StartDate = &start
	m.Filters.EndDate = &end
	q := Compile(m)

	if got := q.Filter[FieldStipend]; !reflect.DeepEqual(got, bson.M{"$gte": min, "$lte": max}) {
		t.Errorf("stipend = %v", got)
	}
	if got := q.Filter[FieldStartDate]; !reflect.DeepEqual(got, bson.M{"$gte": start}) {
		t.Errorf("start_date = %v", got)
	}
	if got := q.Filter[FieldEndDate]; !reflect.DeepEqual(got, bson.M{"$lte": end}) {
		t.Errorf("end_date = %v", got)
	}

	onlyMin := filter.Default()
	onlyMin.Filters.MinStipend = &min
	if got := Compile(onlyMin).Filter[FieldStipend]; !reflect.DeepEqual(got, bson.M{"$gte": min}) {
		t.Errorf("min-only stipend = %v", got)
	}
}

func TestCompile_SkillsIntersect(t *testing.T) {
	m := filter.Default()
	m.Filters.Skills = []string{"go", "sql", "go"}
	got := Compile(m).Filter[FieldSkills]
	want := bson.M{"$in": []string{"go", "sql"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("skills = %v, want %v", got, want)
	}
}

func TestSortFor(t *testing.T) {
	tests := []struct {
		by    filter.SortBy
		order filter.SortOrder
		field string
		dir   int
	}{
		{filter.SortNewest, filter.Desc, FieldCreatedAt, -1},
		{filter.SortNewest, filter.Asc, FieldCreatedAt, 1},
		{filter.SortDeadline, filter.Asc, FieldDeadline, 1},
		{filter.SortStipend, filter.Desc, FieldStipend, -1},
		{filter.SortPopularity, filter.Desc, FieldViews, -1},
		{"bogus", filter.Asc, FieldCreatedAt, -1},
	}
	for _, tt := range tests {
		got := SortFor(tt.by, tt.order)
		want := bson.D{{Key: tt.field, Value: tt.dir}, {Key: "_id", Value: tt.dir}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("SortFor(%s, %s) = %v, want %v", tt.by, tt.order, got, want)
		}
	}
}

func TestCompile_UnknownSortFallsBackToNewestDesc(t *testing.T) {
	m := filter.Default()
	m.SortBy = "relevance"
	m.SortOrder = filter.Asc
	got := Compile(m).Sort
	want := bson.D{{Key: FieldCreatedAt, Value: -1}, {Key: "_id", Value: -1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort = %v, want %v", got, want)
	}
}

func TestCompile_Window(t *testing.T) {
	m := filter.Default()
	m.Page = 3
	m.Limit = 25
	q := Compile(m)
	if q.Skip != 50 || q.Limit != 25 {
		t.Errorf("skip/limit = %d/%d, want 50/25", q.Skip, q.Limit)
	}

	m.Limit = 80
	if q := Compile(m); q.Limit != 50 || q.Skip != 100 {
		t.Errorf("clamped skip/limit = %d/%d, want 100/50", q.Skip, q.Limit)
	}
}

func TestCompile_HugePageKeepsSkipPositive(t *testing.T) {
	m := filter.FromValues(url.Values{"page": {"9223372036854775807"}, "limit": {"50"}})
	q := Compile(m)
	if q.Skip < 0 {
		t.Fatalf("Skip = %d, want non-negative", q.Skip)
	}
	if want := int64(filter.MaxPage-1) * filter.MaxLimit; q.Skip != want {
		t.Errorf("Skip = %d, want %d", q.Skip, want)
	}
}

func TestCompileListing_IgnoresAdvancedFacets(t *testing.T) {
	min := 100.0
	m := filter.Default()
	m.Filters = filter.Filters{
		Type:       "volunteer",
		MinStipend: &min,
		Skills:     []string{"go"},
		Education:  "any",
	}
	m.SortBy = filter.SortStipend
	q := CompileListing(m)

	want := bson.M{"status": "active", "type": "volunteer"}
	if !reflect.DeepEqual(q.Filter, want) {
		t.Errorf("Filter = %v, want %v", q.Filter, want)
	}
	if q.Sort[0].Key != FieldCreatedAt {
		t.Errorf("listing must sort newest first, got %v", q.Sort)
	}
}

func TestCompileSuggest(t *testing.T) {
	f := CompileSuggest("nur")
	if f["status"] != "active" {
		t.Errorf("suggest must be active-only: %v", f)
	}
	or, ok := f["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("$or = %v, want title and description", f["$or"])
	}
}
