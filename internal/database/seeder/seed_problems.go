package seeder

import (
	"context"
	"errors"

	"placement-prep/internal/database"
	"placement-prep/internal/domain/problem"
	"placement-prep/internal/repository"
)

type ProblemsSeeder struct{}

func (ProblemsSeeder) Name() string { return "problems" }

func (ProblemsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "problems", "id", "title", "description", "difficulty", "test_cases"); err != nil {
		return err
	}

	items := []problem.Problem{
		{
			Title:       "Sum of Two Numbers",
			Description: "Read two integers separated by a space and print their sum.",
			Difficulty:  problem.DifficultyEasy,
			TestCases:   []problem.TestCase{{Input: "2 3", Output: "5"}, {Input: "-4 10", Output: "6"}},
		},
		{
			Title:       "Reverse a String",
			Description: "Read a single line and print it reversed.",
			Difficulty:  problem.DifficultyEasy,
			TestCases:   []problem.TestCase{{Input: "placement", Output: "tnemecalp"}},
		},
		{
			Title:       "Longest Increasing Subsequence",
			Description: "Read n followed by n integers and print the length of the longest strictly increasing subsequence.",
			Difficulty:  problem.DifficultyMedium,
			TestCases:   []problem.TestCase{{Input: "6\n10 9 2 5 3 7", Output: "3"}},
		},
	}

	// Rows are inserted one by one outside a transaction so an existing row does not abort the rest.
	repo := repository.NewPostgresProblemRepository(db)
	for _, it := range items {
		if _, err := repo.Create(ctx, it); err != nil && !errors.Is(err, problem.ErrDuplicateTitle) {
			return err
		}
	}
	return nil
}
