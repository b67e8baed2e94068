package repository

import (
	"fmt"
	"testing"

	"harbor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "discuss", models.PostPrivacyPublic)

	for i := 0; i < 3; i++ {
		c := &models.Comment{Content: fmt.Sprintf("comment %d", i), UserID: bob.ID, PostID: post.ID}
		require.NoError(t, repo.Create(testCtx(), c))
	}

	comments, err := repo.ListByPost(testCtx(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)

	// Comments come back in the order they were written
	for i, c := range comments {
		assert.Equal(t, fmt.Sprintf("comment %d", i), c.Content)
		assert.Equal(t, "bob", c.User.Username)
	}
}

func TestCommentGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	_, err := repo.GetByID(testCtx(), 123)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID, "p", models.PostPrivacyPublic)

	c := &models.Comment{Content: "oops", UserID: alice.ID, PostID: post.ID}
	require.NoError(t, repo.Create(testCtx(), c))
	require.NoError(t, repo.Delete(testCtx(), c.ID))

	comments, err := repo.ListByPost(testCtx(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
