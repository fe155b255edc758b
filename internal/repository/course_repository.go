package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

const courseColumns = `id, title, description, price, image_url, creator_id, created_at, updated_at`

type courseRepository struct {
	db DB
}

// NewCourseRepository returns a Postgres-backed implementation.
func NewCourseRepository(db DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (title, description, price, image_url, creator_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.Price,
		course.ImageURL,
		course.CreatorID,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	return mapError(err)
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id=$1`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	const query = `
        UPDATE courses SET title=$1, description=$2, price=$3, image_url=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.Price,
		course.ImageURL,
		course.ID,
	).Scan(&course.UpdatedAt)
	return mapError(err)
}

func (r *courseRepository) DeleteOwned(ctx context.Context, id, creatorID string) (*domain.Course, error) {
	const query = `DELETE FROM courses WHERE id=$1 AND creator_id=$2 RETURNING ` + courseColumns

	course, err := scanCourse(r.db.QueryRow(ctx, query, id, creatorID))
	if err != nil {
		return nil, mapError(err)
	}
	return course, nil
}

func (r *courseRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE creator_id=$1 ORDER BY created_at`
	return r.list(ctx, query, creatorID)
}

func (r *courseRepository) ListAll(ctx context.Context) ([]domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *courseRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id = ANY($1) ORDER BY created_at`
	return r.list(ctx, query, ids)
}

func (r *courseRepository) list(ctx context.Context, query string, args ...any) ([]domain.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *course)
	}
	return result, rows.Err()
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var course domain.Course
	if err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.ImageURL,
		&course.CreatorID,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &course, nil
}
