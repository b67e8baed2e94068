// Package service implements business logic between handlers and repositories.
package service

import (
	"context"
	"encoding/json"

	"harbor/internal/middleware"
	"harbor/internal/models"
	"harbor/internal/notifications"
	"harbor/internal/observability"
	"harbor/internal/repository"
)

// NotificationService persists notification events and pushes them to the
// target user's live channel. Emission is best-effort: a failure is logged
// and counted, never returned to the operation that triggered it.
type NotificationService struct {
	repo     repository.NotificationRepository
	notifier *notifications.Notifier
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repository.NotificationRepository, notifier *notifications.Notifier) *NotificationService {
	return &NotificationService{repo: repo, notifier: notifier}
}

// Emit records a notification for targetID and publishes it for live
// delivery. Self-notifications are dropped; no user is notified about their
// own action.
func (s *NotificationService) Emit(ctx context.Context, typ models.NotificationType, targetID, actorID uint, postID, commentID *uint) {
	if targetID == actorID || targetID == 0 {
		return
	}

	n := &models.Notification{
		UserID:    targetID,
		ActorID:   actorID,
		Type:      typ,
		PostID:    postID,
		CommentID: commentID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		observability.NotificationFailures.WithLabelValues("persist").Inc()
		middleware.Logger.WarnContext(ctx, "failed to persist notification",
			"type", typ, "target_id", targetID, "error", err)
		return
	}

	observability.NotificationsEmitted.WithLabelValues(string(typ)).Inc()

	payload, err := json.Marshal(n)
	if err != nil {
		observability.NotificationFailures.WithLabelValues("encode").Inc()
		middleware.Logger.WarnContext(ctx, "failed to encode notification",
			"type", typ, "error", err)
		return
	}

	if err := s.notifier.PublishUser(ctx, targetID, string(payload)); err != nil {
		observability.NotificationFailures.WithLabelValues("publish").Inc()
		middleware.Logger.WarnContext(ctx, "failed to publish notification",
			"type", typ, "target_id", targetID, "error", err)
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// CountUnread returns the number of unread notifications for the user.
func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marks a single notification read for its owner.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks every unread notification read for the user.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllRead(ctx, userID)
}
