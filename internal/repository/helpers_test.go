package repository

import (
	"context"
	"fmt"
	"testing"

	"harbor/internal/database"
	"harbor/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed-password",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, content string, privacy models.PostPrivacy) *models.Post {
	t.Helper()
	post := &models.Post{Content: content, UserID: userID, Privacy: privacy}
	require.NoError(t, db.Create(post).Error)
	return post
}

func acceptedFriends(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()
	f := &models.Friendship{RequesterID: a, AddresseeID: b, Status: models.FriendshipStatusAccepted}
	require.NoError(t, db.Create(f).Error)
}

func testCtx() context.Context {
	return context.Background()
}
