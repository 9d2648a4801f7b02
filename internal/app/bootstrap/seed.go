// internal/app/bootstrap/seed.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/opportunityhub/internal/app/search/compiler"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// seedStore is the part of the opportunities store used for seeding.
type seedStore interface {
	Count(ctx context.Context, q compiler.Query) (int64, error)
	Insert(ctx context.Context, o models.Opportunity) (models.Opportunity, error)
}

// seedDemoData inserts demoOpportunities when the collection holds no
// documents at all. It returns how many were inserted.
func seedDemoData(ctx context.Context, store seedStore, logger *zap.Logger) (int, error) {
	n, err := store.Count(ctx, compiler.Query{Filter: bson.M{}})
	if err != nil {
		return 0, fmt.Errorf("count opportunities: %w", err)
	}
	if n > 0 {
		logger.Debug("demo seeding skipped; collection not empty", zap.Int64("existing", n))
		return 0, nil
	}

	now := time.Now().UTC()
	inserted := 0
	for _, o := range demoOpportunities(now) {
		if _, err := store.Insert(ctx, o); err != nil {
			return inserted, fmt.Errorf("insert %q: %w", o.Title, err)
		}
		inserted++
	}
	return inserted, nil
}

func demoOpportunities(now time.Time) []models.Opportunity {
	day := 24 * time.Hour
	at := func(d time.Duration) *time.Time {
		t := now.Add(d).Truncate(day)
		return &t
	}
	stipend := func(amount float64) *models.Stipend {
		return &models.Stipend{Amount: amount, Currency: "NGN"}
	}

	return []models.Opportunity{
		{
			Title:               "Backend Engineering Intern",
			Description:         "Build and test Go services that power a payments platform.",
			OrganizationName:    "Lagos Fintech Labs",
			Type:                models.TypeInternship,
			Category:            "technology",
			Requirements:        models.Requirements{Education: "tertiary", Experience: "beginner", Skills: []string{"go", "sql", "git"}},
			Location:            models.Location{State: "Lagos", LGA: "Ikeja"},
			StartDate:           at(30 * day),
			EndDate:             at(120 * day),
			ApplicationDeadline: at(21 * day),
			Benefits:            models.Benefits{Stipend: stipend(80000), Mentorship: true, Certificate: true},
			Status:              models.StatusActive,
		},
		{
			Title:               "Community Health Volunteer",
			Description:         "Support nurses running weekend vaccination outreach in rural clinics.",
			OrganizationName:    "Kano Health Initiative",
			Type:                models.TypeVolunteer,
			Category:            "health",
			Requirements:        models.Requirements{Education: "secondary", Experience: "none", Skills: []string{"first aid", "hausa"}},
			Location:            models.Location{State: "Kano", LGA: "Nassarawa"},
			StartDate:           at(14 * day),
			EndDate:             at(74 * day),
			ApplicationDeadline: at(10 * day),
			Benefits:            models.Benefits{Certificate: true},
			Status:              models.StatusActive,
		},
		{
			Title:               "Remote Data Analyst Intern",
			Description:         "Clean survey data and build dashboards for education programmes.",
			OrganizationName:    "EduData Africa",
			Type:                models.TypeInternship,
			Category:            "education",
			Requirements:        models.Requirements{Education: "tertiary", Experience: "intermediate", Skills: []string{"sql", "excel", "python"}},
			Location:            models.Location{State: "Oyo", LGA: "Ibadan North", IsRemote: true},
			StartDate:           at(45 * day),
			EndDate:             at(135 * day),
			ApplicationDeadline: at(30 * day),
			Benefits:            models.Benefits{Stipend: stipend(60000), Mentorship: true},
			Status:              models.StatusActive,
		},
		{
			Title:               "Farm Extension Volunteer",
			Description:         "Teach smallholder farmers improved irrigation and storage practices.",
			OrganizationName:    "Green Harvest Cooperative",
			Type:                models.TypeVolunteer,
			Category:            "agriculture",
			Requirements:        models.Requirements{Education: "any", Experience: "beginner", Skills: []string{"farming", "teaching"}},
			Location:            models.Location{State: "Benue", LGA: "Makurdi"},
			StartDate:           at(20 * day),
			EndDate:             at(110 * day),
			ApplicationDeadline: at(14 * day),
			Benefits:            models.Benefits{Stipend: stipend(15000), Certificate: true},
			Status:              models.StatusActive,
		},
		{
			Title:               "Marketing Assistant Intern",
			Description:         "Plan social media campaigns for a growing retail brand.",
			OrganizationName:    "Abuja Retail Group",
			Type:                models.TypeInternship,
			Category:            "business",
			Requirements:        models.Requirements{Education: "tertiary", Experience: "none", Skills: []string{"writing", "social media"}},
			Location:            models.Location{State: "FCT", LGA: "Abuja Municipal"},
			StartDate:           at(10 * day),
			EndDate:             at(100 * day),
			ApplicationDeadline: at(7 * day),
			Benefits:            models.Benefits{Stipend: stipend(50000)},
			Status:              models.StatusActive,
		},
		{
			Title:            "Coastal Cleanup Coordinator",
			Description:      "Organise volunteers for monthly beach and lagoon cleanups.",
			OrganizationName: "Clean Coast Nigeria",
			Type:             models.TypeVolunteer,
			Category:         "environment",
			Location:         models.Location{State: "Lagos", LGA: "Eti-Osa"},
			Status:           models.StatusDraft,
		},
	}
}
