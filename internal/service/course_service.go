package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/events"
	"github.com/spec-kit/course-marketplace/internal/repository"
	apperrors "github.com/spec-kit/course-marketplace/pkg/util/errorutil"
)

// CourseService manages courses on behalf of their creating admin.
type CourseService struct {
	courses    repository.CourseRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCourseService builds the service.
func NewCourseService(courses repository.CourseRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, dispatcher: dispatcher, logger: logger}
}

// Create stores course with the acting admin as creator.
func (s *CourseService) Create(ctx context.Context, adminID string, course *domain.Course) (*domain.Course, error) {
	course.CreatorID = adminID
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.emit(ctx, events.EventCourseCreated, adminID, course)
	return course, nil
}

// Update merges patch into the course. Only the creator may update.
func (s *CourseService) Update(ctx context.Context, adminID, courseID string, patch domain.CoursePatch) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, notFoundOrInternal(err, "course")
	}
	if course.CreatorID != adminID {
		return nil, apperrors.NewForbidden("unauthorized")
	}

	patch.Apply(course)
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, notFoundOrInternal(err, "course")
	}
	s.emit(ctx, events.EventCourseUpdated, adminID, course)
	return course, nil
}

// Delete removes the course when adminID created it. A course owned by another
// admin is indistinguishable from a missing one.
func (s *CourseService) Delete(ctx context.Context, adminID, courseID string) (*domain.Course, error) {
	course, err := s.courses.DeleteOwned(ctx, courseID, adminID)
	if err != nil {
		return nil, notFoundOrInternal(err, "course")
	}
	s.emit(ctx, events.EventCourseDeleted, adminID, course)
	return course, nil
}

// ListByCreator returns the admin's courses, or NOT_FOUND when there are none.
func (s *CourseService) ListByCreator(ctx context.Context, adminID string) ([]domain.Course, error) {
	courses, err := s.courses.ListByCreator(ctx, adminID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(courses) == 0 {
		return nil, apperrors.NewNotFound("courses", nil)
	}
	return courses, nil
}

// Preview returns every course.
func (s *CourseService) Preview(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return courses, nil
}

func (s *CourseService) emit(ctx context.Context, eventType events.EventType, adminID string, course *domain.Course) {
	publish(ctx, s.dispatcher, s.logger, events.New(
		eventType,
		course.ID,
		domain.Principal{Role: domain.RoleAdmin, ID: adminID},
		events.CoursePayload{Title: course.Title, Price: course.Price},
	))
}

func notFoundOrInternal(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.NewInternalError(err)
}
