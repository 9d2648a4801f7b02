package search_test

import (
	"testing"

	appsearch "github.com/dalemusser/opportunityhub/internal/app/search"
	opportunitystore "github.com/dalemusser/opportunityhub/internal/app/store/opportunities"
	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"github.com/dalemusser/opportunityhub/internal/testutil"
	"go.uber.org/zap"
)

func newStoreService(t *testing.T) (*appsearch.Service, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return appsearch.NewService(opportunitystore.New(db), nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestSearch_MinStipendExcludesUnpaid(t *testing.T) {
	svc, fx := newStoreService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	paid := fx.CreateOpportunity(ctx, "Paid Internship", testutil.WithStipend(60000))
	fx.CreateOpportunity(ctx, "Unpaid Internship")
	fx.CreateOpportunity(ctx, "Low Stipend Internship", testutil.WithStipend(20000))
	fx.CreateOpportunity(ctx, "Paid Volunteer", testutil.WithType(models.TypeVolunteer), testutil.WithStipend(80000))

	minStipend := 50000.0
	m := filter.Default()
	m.Filters.Type = models.TypeInternship
	m.Filters.MinStipend = &minStipend

	page, err := svc.Search(ctx, m)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := models.Pagination{Page: 1, Limit: 20, Total: 1, Pages: 1}
	if page.Pagination != want {
		t.Errorf("Pagination = %+v, want %+v", page.Pagination, want)
	}
	if len(page.Opportunities) != 1 || page.Opportunities[0].ID != paid.ID {
		t.Errorf("got %+v, want only %q", page.Opportunities, paid.Title)
	}
}

func TestSearch_SkillsMatchByIntersection(t *testing.T) {
	svc, fx := newStoreService(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	overlap := fx.CreateOpportunity(ctx, "Backend Intern", testutil.WithSkills("go", "docker"))
	fx.CreateOpportunity(ctx, "Designer", testutil.WithSkills("figma", "illustration"))
	fx.CreateOpportunity(ctx, "No Skills Listed")

	m := filter.Default()
	m.Filters.Skills = []string{"go", "sql"}

	page, err := svc.Search(ctx, m)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Pagination.Total != 1 {
		t.Errorf("Total = %d, want 1", page.Pagination.Total)
	}
	for _, o := range page.Opportunities {
		if o.ID != overlap.ID {
			t.Errorf("unexpected result %q with skills %v", o.Title, o.Requirements.Skills)
		}
	}
	if len(page.Opportunities) != 1 {
		t.Errorf("got %d results, want 1", len(page.Opportunities))
	}
}
