package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dalemusser/opportunityhub/internal/client/searchctl"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	stipendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

func renderResults(s searchctl.State) string {
	var b strings.Builder
	if s.Err != nil {
		b.WriteString(errorStyle.Render("Search failed: "+s.Err.Error()) + "\n")
	}
	if len(s.Opportunities) == 0 {
		b.WriteString(noDataStyle.Render("No opportunities match.") + "\n")
		return b.String()
	}

	for i, o := range s.Opportunities {
		b.WriteString(fmt.Sprintf("%3d. %s\n", i+1, titleStyle.Render(o.Title)))
		b.WriteString("     " + metaStyle.Render(describe(o)) + "\n")
		if o.Benefits.Stipend != nil {
			b.WriteString("     " + stipendStyle.Render(formatStipend(*o.Benefits.Stipend)) + "\n")
		}
	}

	p := s.Pagination
	summary := fmt.Sprintf("Showing %d of %d (page %d of %d)", len(s.Opportunities), p.Total, s.Model.Page, max(p.Pages, 1))
	if s.HasMore {
		summary += ", more available"
	}
	b.WriteString("\n" + summaryStyle.Render(summary) + "\n")
	return b.String()
}

// describe is the one-line "org · type · category · place" summary.
func describe(o models.Opportunity) string {
	parts := []string{}
	for _, p := range []string{o.OrganizationName, o.Type, o.Category, place(o.Location)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}

func place(l models.Location) string {
	var where string
	switch {
	case l.LGA != "" && l.State != "":
		where = l.LGA + ", " + l.State
	case l.State != "":
		where = l.State
	}
	if l.IsRemote {
		if where == "" {
			return "Remote"
		}
		return where + " (remote)"
	}
	return where
}

func formatStipend(s models.Stipend) string {
	cur := s.Currency
	if cur == "" {
		cur = "NGN"
	}
	return fmt.Sprintf("Stipend: %s %s", cur, groupThousands(int64(s.Amount)))
}

func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := fmt.Sprintf("%d", n)
	var out []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func renderSuggestions(list []models.Suggestion) string {
	if len(list) == 0 {
		return noDataStyle.Render("No suggestions.") + "\n"
	}
	var b strings.Builder
	for _, s := range list {
		b.WriteString(titleStyle.Render(s.Title) + " " + metaStyle.Render(s.Type+" · "+s.Category) + "\n")
	}
	return b.String()
}

func renderSaved(list []models.SavedSearch) string {
	if len(list) == 0 {
		return noDataStyle.Render("No saved searches.") + "\n"
	}
	var b strings.Builder
	for _, s := range list {
		b.WriteString(fmt.Sprintf("%s  %s\n", metaStyle.Render(s.ID.Hex()), titleStyle.Render(s.Name)))
		if q := s.Filters.Query; q != "" {
			b.WriteString("    " + metaStyle.Render("query: "+q) + "\n")
		}
	}
	return b.String()
}
