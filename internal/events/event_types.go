package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAdminSignedUp   EventType = "admin_signed_up"
	EventUserSignedUp    EventType = "user_signed_up"
	EventCourseCreated   EventType = "course_created"
	EventCourseUpdated   EventType = "course_updated"
	EventCourseDeleted   EventType = "course_deleted"
	EventCoursePurchased EventType = "course_purchased"
)

// SignedUpEvent returns the signup event type for role.
func SignedUpEvent(role domain.Role) EventType {
	if role == domain.RoleAdmin {
		return EventAdminSignedUp
	}
	return EventUserSignedUp
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string           `json:"id"`
	Type      EventType        `json:"type"`
	SubjectID string           `json:"subject_id"`
	Actor     domain.Principal `json:"actor"`
	Timestamp time.Time        `json:"timestamp"`
	Payload   interface{}      `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, subjectID string, actor domain.Principal, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AccountPayload payload for signup events.
type AccountPayload struct {
	Email string `json:"email"`
}

// CoursePayload payload for course lifecycle events.
type CoursePayload struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// PurchasePayload payload for purchases.
type PurchasePayload struct {
	PurchaseID string `json:"purchase_id"`
	CourseID   string `json:"course_id"`
}
