package repository

import (
	"context"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

type purchaseRepository struct {
	db DB
}

// NewPurchaseRepository returns a Postgres-backed implementation.
func NewPurchaseRepository(db DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create inserts the purchase. The (user_id, course_id) unique index turns a
// concurrent double purchase into ErrDuplicate.
func (r *purchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	const query = `
        INSERT INTO purchases (user_id, course_id)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, purchase.UserID, purchase.CourseID).
		Scan(&purchase.ID, &purchase.CreatedAt, &purchase.UpdatedAt)
	return mapError(err)
}

func (r *purchaseRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM purchases WHERE user_id=$1 AND course_id=$2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Purchase, error) {
	const query = `
        SELECT id, user_id, course_id, created_at, updated_at
        FROM purchases WHERE user_id=$1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Purchase{}
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.CourseID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
