package service

import (
	"context"
	"strings"
	"testing"

	"harbor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	post, err := env.posts.CreatePost(ctx, alice.ID, "discuss", "", models.PostPrivacyPublic)
	require.NoError(t, err)

	_, err = env.comments.AddComment(ctx, post.ID, alice.ID, "  ")
	assert.Equal(t, models.CodeEmptyContent, appCode(t, err))

	_, err = env.comments.AddComment(ctx, post.ID, alice.ID, strings.Repeat("a", 1001))
	assert.Equal(t, models.CodeInvalidInput, appCode(t, err))

	_, err = env.comments.AddComment(ctx, 9999, alice.ID, "hello")
	assert.Equal(t, models.CodeNotFound, appCode(t, err))
}

func TestAddCommentNotifiesAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	post, err := env.posts.CreatePost(ctx, alice.ID, "discuss", "", models.PostPrivacyPublic)
	require.NoError(t, err)

	comment, err := env.comments.AddComment(ctx, post.ID, bob.ID, "<b>nice</b>")
	require.NoError(t, err)
	assert.Contains(t, comment.Content, "&lt;b&gt;")
	assert.Equal(t, "bob", comment.User.Username)

	notifs := env.notificationsFor(t, alice.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationCommentPost, notifs[0].Type)
	require.NotNil(t, notifs[0].CommentID)
	assert.Equal(t, comment.ID, *notifs[0].CommentID)

	// Commenting on your own post stays quiet
	_, err = env.comments.AddComment(ctx, post.ID, alice.ID, "thanks")
	require.NoError(t, err)
	assert.Len(t, env.notificationsFor(t, alice.ID), 1)
}

func TestListCommentsOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	post, err := env.posts.CreatePost(ctx, alice.ID, "discuss", "", models.PostPrivacyPublic)
	require.NoError(t, err)

	for _, text := range []string{"first", "second", "third"} {
		_, err := env.comments.AddComment(ctx, post.ID, alice.ID, text)
		require.NoError(t, err)
	}

	comments, err := env.comments.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "third", comments[2].Content)
}

func TestDeleteCommentPermissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	post, err := env.posts.CreatePost(ctx, alice.ID, "discuss", "", models.PostPrivacyPublic)
	require.NoError(t, err)

	comment, err := env.comments.AddComment(ctx, post.ID, bob.ID, "hot take")
	require.NoError(t, err)

	// A bystander cannot delete it
	err = env.comments.DeleteComment(ctx, comment.ID, carol.ID)
	assert.Equal(t, models.CodeForbidden, appCode(t, err))

	// The post's author can moderate their own post
	require.NoError(t, env.comments.DeleteComment(ctx, comment.ID, alice.ID))

	comments, err := env.comments.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
