package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/opportunityhub/internal/client/searchctl"
	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
)

func TestGroupThousands(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		80000:    "80,000",
		1234567:  "1,234,567",
		-45000:   "-45,000",
	}
	for in, want := range tests {
		if got := groupThousands(in); got != want {
			t.Errorf("groupThousands(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		loc  models.Location
		want string
	}{
		{models.Location{State: "Lagos", LGA: "Ikeja"}, "Ikeja, Lagos"},
		{models.Location{State: "Kano"}, "Kano"},
		{models.Location{IsRemote: true}, "Remote"},
		{models.Location{State: "Oyo", IsRemote: true}, "Oyo (remote)"},
		{models.Location{}, ""},
	}
	for _, tt := range tests {
		if got := place(tt.loc); got != tt.want {
			t.Errorf("place(%+v) = %q, want %q", tt.loc, got, tt.want)
		}
	}
}

func TestRenderResults(t *testing.T) {
	s := searchctl.State{
		Model: filter.Default(),
		Opportunities: []models.Opportunity{{
			Title:            "Data Intern",
			OrganizationName: "EduData",
			Type:             models.TypeInternship,
			Category:         "education",
			Location:         models.Location{State: "Oyo", LGA: "Ibadan North"},
			Benefits:         models.Benefits{Stipend: &models.Stipend{Amount: 60000}},
		}},
		Pagination: models.NewPagination(1, 20, 21),
		HasMore:    true,
	}
	out := renderResults(s)
	for _, want := range []string{"Data Intern", "EduData", "Ibadan North, Oyo", "NGN 60,000", "Showing 1 of 21", "more available"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResults_EmptyWithError(t *testing.T) {
	out := renderResults(searchctl.State{Model: filter.Default(), Err: errors.New("http 500")})
	if !strings.Contains(out, "Search failed: http 500") || !strings.Contains(out, "No opportunities match.") {
		t.Errorf("output = %q", out)
	}
}
