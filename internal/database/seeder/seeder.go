package seeder

import (
	"context"

	"placement-prep/internal/database"
)

// Seeder loads one kind of sample data. Running it twice must not duplicate rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
