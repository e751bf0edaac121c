package repository

import (
	"context"

	"placement-prep/internal/database"
	"placement-prep/internal/domain/course"

	"github.com/google/uuid"
)

type CourseRepository interface {
	List(ctx context.Context) ([]course.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (course.Course, error)
	Create(ctx context.Context, c course.Course) (course.Course, error)
	Update(ctx context.Context, c course.Course) (course.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

const courseColumns = `id, title, description, image_url, category, instructor, level, topics, online_resources, created_at, updated_at`

func (r *PostgresCourseRepository) List(ctx context.Context) ([]course.Course, error) {
	rows, err := r.db.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (course.Course, error) {
	c, err := scanCourse(r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, err
	}
	return c, nil
}

func (r *PostgresCourseRepository) Create(ctx context.Context, c course.Course) (course.Course, error) {
	topics, resources, err := encodeCourseJSON(c)
	if err != nil {
		return course.Course{}, err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO courses (id, title, description, image_url, category, instructor, level, topics, online_resources)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb)
		 RETURNING `+courseColumns,
		c.ID, c.Title, c.Description, c.ImageURL, c.Category, c.Instructor, c.Level, topics, resources,
	)
	return scanCourse(row)
}

func (r *PostgresCourseRepository) Update(ctx context.Context, c course.Course) (course.Course, error) {
	topics, resources, err := encodeCourseJSON(c)
	if err != nil {
		return course.Course{}, err
	}

	row := r.db.QueryRow(ctx,
		`UPDATE courses
		 SET title = $2, description = $3, image_url = $4, category = $5, instructor = $6, level = $7,
		     topics = $8::jsonb, online_resources = $9::jsonb, updated_at = now()
		 WHERE id = $1
		 RETURNING `+courseColumns,
		c.ID, c.Title, c.Description, c.ImageURL, c.Category, c.Instructor, c.Level, topics, resources,
	)
	updated, err := scanCourse(row)
	if err != nil {
		if isNoRows(err) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, err
	}
	return updated, nil
}

func (r *PostgresCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return course.ErrNotFound
	}
	return nil
}

func encodeCourseJSON(c course.Course) (string, string, error) {
	topics, err := toJSONB(c.Topics, "[]")
	if err != nil {
		return "", "", err
	}
	resources, err := toJSONB(c.OnlineResources, "{}")
	if err != nil {
		return "", "", err
	}
	return topics, resources, nil
}

func scanCourse(row database.Row) (course.Course, error) {
	var c course.Course
	var topics, resources []byte
	if err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.ImageURL, &c.Category, &c.Instructor, &c.Level,
		&topics, &resources, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return course.Course{}, err
	}
	if err := fromJSONB(topics, &c.Topics); err != nil {
		return course.Course{}, err
	}
	if err := fromJSONB(resources, &c.OnlineResources); err != nil {
		return course.Course{}, err
	}
	return c, nil
}
