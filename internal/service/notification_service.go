package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/course-marketplace/internal/config"
	"github.com/spec-kit/course-marketplace/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		logger: logger,
		cfg:    cfg,
	}
}

// EventTypes lists the events that trigger notifications.
func (n *NotificationService) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventAdminSignedUp,
		events.EventUserSignedUp,
		events.EventCourseCreated,
		events.EventCourseUpdated,
		events.EventCourseDeleted,
		events.EventCoursePurchased,
	}
}

// Handle sends the notifications for event.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventAdminSignedUp, events.EventUserSignedUp:
		return n.handleSignedUp(ctx, event)
	case events.EventCourseCreated, events.EventCourseUpdated, events.EventCourseDeleted:
		return n.handleCourseChanged(ctx, event)
	case events.EventCoursePurchased:
		return n.handleCoursePurchased(ctx, event)
	default:
		return fmt.Errorf("no notification for event type %q", event.Type)
	}
}

func (n *NotificationService) handleSignedUp(ctx context.Context, event events.Event) error {
	n.logger.Info("SignedUp", zap.String("account_id", event.SubjectID), zap.String("role", string(event.Actor.Role)))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCourseChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("CourseChanged",
		zap.String("event_type", string(event.Type)),
		zap.String("course_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCoursePurchased(ctx context.Context, event events.Event) error {
	n.logger.Info("CoursePurchased",
		zap.String("course_id", event.SubjectID),
		zap.String("user_id", event.Actor.ID))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
