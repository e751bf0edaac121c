package seeder

func Defaults() []Seeder {
	return []Seeder{
		ProblemsSeeder{},
		CompaniesSeeder{},
	}
}
