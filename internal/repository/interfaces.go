package repository

import (
	"context"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// AccountRepository persists admins or users, one collection per role.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// CourseRepository persists courses.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	// DeleteOwned removes the course only when creatorID matches, in a single statement.
	DeleteOwned(ctx context.Context, id, creatorID string) (*domain.Course, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Course, error)
	ListAll(ctx context.Context) ([]domain.Course, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Course, error)
}

// PurchaseRepository persists purchases.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Purchase, error)
}
