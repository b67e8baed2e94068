package service

import (
	"context"
	"fmt"
	"testing"

	"harbor/internal/config"
	"harbor/internal/database"
	"harbor/internal/models"
	"harbor/internal/notifications"
	"harbor/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires every service against a private in-memory database. The
// notifier runs without Redis, so emission still persists notification rows
// but live publishing is a no-op.
type testEnv struct {
	db            *gorm.DB
	auth          *AuthService
	users         *UserService
	friends       *FriendService
	posts         *PostService
	comments      *CommentService
	notifications *NotificationService
	notifRepo     repository.NotificationRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenTest()
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:       "test-secret-that-is-long-enough-00",
		SessionTTLHours: 1,
		Port:            "0",
		Env:             "test",
	}

	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	notifSvc := NewNotificationService(notifRepo, notifications.NewNotifier(nil))

	return &testEnv{
		db:            db,
		auth:          NewAuthService(userRepo, cfg),
		users:         NewUserService(userRepo),
		friends:       NewFriendService(friendRepo, userRepo, notifSvc),
		posts:         NewPostService(postRepo, notifSvc),
		comments:      NewCommentService(commentRepo, postRepo, notifSvc),
		notifications: notifSvc,
		notifRepo:     notifRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) notificationsFor(t *testing.T, userID uint) []models.Notification {
	t.Helper()
	list, err := e.notifRepo.ListByUser(context.Background(), userID, 50, 0)
	require.NoError(t, err)
	return list
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	return appErr.Code
}
