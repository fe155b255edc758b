package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/events"
	"github.com/spec-kit/course-marketplace/internal/observability"
	"github.com/spec-kit/course-marketplace/internal/repository"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util/errorutil"
)

// PurchaseService records purchases and lists purchased courses.
type PurchaseService struct {
	purchases  repository.PurchaseRepository
	courses    repository.CourseRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// PurchaseDependencies encapsulates collaborators for the purchase service.
type PurchaseDependencies struct {
	Purchases  repository.PurchaseRepository
	Courses    repository.CourseRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewPurchaseService builds the service.
func NewPurchaseService(deps PurchaseDependencies) *PurchaseService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{
		purchases:  deps.Purchases,
		courses:    deps.Courses,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Purchase records that userID bought courseID. The Exists check answers the
// common repeat case early; the (user, course) unique index is what actually
// prevents a double purchase under concurrency.
func (s *PurchaseService) Purchase(ctx context.Context, userID, courseID string) (*domain.Purchase, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, notFoundOrInternal(err, "course")
	}

	exists, err := s.purchases.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if exists {
		return nil, apperrors.NewConflict("course already purchased", map[string]any{"courseId": courseID})
	}

	purchase := &domain.Purchase{UserID: userID, CourseID: courseID}
	if err := s.purchases.Create(ctx, purchase); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("course already purchased", map[string]any{"courseId": courseID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordPurchase()
	publish(ctx, s.dispatcher, s.logger, events.New(
		events.EventCoursePurchased,
		courseID,
		domain.Principal{Role: domain.RoleUser, ID: userID},
		events.PurchasePayload{PurchaseID: purchase.ID, CourseID: courseID},
	))
	return purchase, nil
}

// PurchasedCourses returns the courses userID bought. Courses deleted after the
// purchase are omitted.
func (s *PurchaseService) PurchasedCourses(ctx context.Context, userID string) ([]domain.Course, error) {
	purchases, err := s.purchases.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(purchases) == 0 {
		return nil, apperrors.NewNotFound("purchased courses", nil)
	}

	seen := make(map[string]struct{}, len(purchases))
	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		if _, ok := seen[p.CourseID]; ok {
			continue
		}
		seen[p.CourseID] = struct{}{}
		ids = append(ids, p.CourseID)
	}

	courses, err := s.courses.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return courses, nil
}
