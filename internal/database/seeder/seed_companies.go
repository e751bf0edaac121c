package seeder

import (
	"context"
	"errors"

	"placement-prep/internal/database"
	"placement-prep/internal/domain/company"
	"placement-prep/internal/repository"
)

type CompaniesSeeder struct{}

func (CompaniesSeeder) Name() string { return "companies" }

func (CompaniesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "companies", "id", "name", "description", "logo_url", "rounds", "topics", "previous_questions"); err != nil {
		return err
	}

	items := []company.Company{
		{
			Name:        "Acme Software",
			Description: "Product company hiring graduate software engineers every year.",
			LogoURL:     "https://placehold.co/96x96?text=Acme",
			Rounds:      []string{"Online assessment", "Technical interview", "HR interview"},
			Topics: []company.Topic{
				{Category: "DSA", Subjects: []string{"Arrays", "Hashing", "Trees"}},
				{Category: "Core CS", Subjects: []string{"DBMS", "Operating Systems"}},
			},
			PreviousQuestions: []company.Question{
				{Question: "Find the first non-repeating character in a string.", Answer: "Count with a map, then scan again for count 1."},
			},
		},
		{
			Name:        "Globex Consulting",
			Description: "Services firm with aptitude-heavy campus drives.",
			LogoURL:     "https://placehold.co/96x96?text=Globex",
			Rounds:      []string{"Aptitude test", "Group discussion", "Technical + HR"},
			Topics: []company.Topic{
				{Category: "Aptitude", Subjects: []string{"Percentages", "Time and work"}},
			},
			PreviousQuestions: []company.Question{},
		},
	}

	// Rows are inserted one by one outside a transaction so an existing row does not abort the rest.
	repo := repository.NewPostgresCompanyRepository(db)
	for _, it := range items {
		if _, err := repo.Create(ctx, it); err != nil && !errors.Is(err, company.ErrDuplicateName) {
			return err
		}
	}
	return nil
}
