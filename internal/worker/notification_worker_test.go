package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/course-marketplace/internal/config"
	"github.com/spec-kit/course-marketplace/internal/domain"
	"github.com/spec-kit/course-marketplace/internal/events"
	"github.com/spec-kit/course-marketplace/internal/service"
)

func newWorker(queueSize int) (*NotificationWorker, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	notifications := service.NewNotificationService(logger, config.NotificationConfig{})
	return NewNotificationWorker(notifications, logger, queueSize), logs
}

func TestWorkerDrainsQueueOnStop(t *testing.T) {
	w, logs := newWorker(16)
	dispatcher := events.NewInMemoryDispatcher()
	w.Start(dispatcher)

	ctx := context.Background()
	admin := domain.Principal{Role: domain.RoleAdmin, ID: "admin-1"}
	user := domain.Principal{Role: domain.RoleUser, ID: "user-1"}
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventUserSignedUp, "user-1", user, nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventCourseCreated, "course-1", admin, nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventCourseDeleted, "course-1", admin, nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventCoursePurchased, "course-1", user, nil)))

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, w.Stop(stopCtx))

	assert.Equal(t, 1, logs.FilterMessage("SignedUp").Len())
	assert.Equal(t, 2, logs.FilterMessage("CourseChanged").Len())
	assert.Equal(t, 1, logs.FilterMessage("CoursePurchased").Len())

	err := dispatcher.Publish(ctx, events.New(events.EventUserSignedUp, "user-2", user, nil))
	assert.ErrorIs(t, err, ErrStopped)
}

func TestWorkerDropsWhenQueueFull(t *testing.T) {
	w, logs := newWorker(1)
	event := events.New(events.EventCourseCreated, "course-1", domain.Principal{Role: domain.RoleAdmin, ID: "admin-1"}, nil)

	require.NoError(t, w.enqueue(context.Background(), event))
	assert.ErrorIs(t, w.enqueue(context.Background(), event), ErrQueueFull)
	assert.Equal(t, 1, logs.FilterMessage("notification dropped").Len())

	require.NoError(t, w.Stop(context.Background()))
	assert.NoError(t, w.Stop(context.Background()))
}

func TestWorkerStartAfterStopIsNoop(t *testing.T) {
	w, _ := newWorker(0)
	require.NoError(t, w.Stop(context.Background()))

	dispatcher := events.NewInMemoryDispatcher()
	w.Start(dispatcher)
	event := events.New(events.EventUserSignedUp, "user-1", domain.Principal{Role: domain.RoleUser, ID: "user-1"}, nil)
	assert.NoError(t, dispatcher.Publish(context.Background(), event))
	assert.Equal(t, defaultQueueSize, cap(w.queue))
}
