package service

import (
	"context"

	"harbor/internal/models"
	"harbor/internal/repository"
	"harbor/internal/validation"
)

// CommentService manages comments on posts.
type CommentService struct {
	comments      repository.CommentRepository
	posts         repository.PostRepository
	notifications *NotificationService
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, notifications *NotificationService) *CommentService {
	return &CommentService{comments: comments, posts: posts, notifications: notifications}
}

// AddComment appends a comment to a post and notifies the post's author.
func (s *CommentService) AddComment(ctx context.Context, postID, authorID uint, content string) (*models.Comment, error) {
	if validation.IsBlank(content) {
		return nil, models.NewEmptyContentError("Comment cannot be empty")
	}
	if len(content) > validation.MaxCommentContentLength {
		return nil, models.NewInvalidInputError("Comment is too long")
	}

	post, err := s.posts.GetByID(ctx, postID, authorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: validation.SanitizeContent(content),
		UserID:  authorID,
		PostID:  postID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifications.Emit(ctx, models.NotificationCommentPost, post.UserID, authorID, &postID, &comment.ID)

	return s.comments.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments in the order they were written.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// DeleteComment removes a comment. The comment's author or the post's author
// may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, actingUserID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != actingUserID {
		post, err := s.posts.GetByID(ctx, comment.PostID, actingUserID)
		if err != nil {
			return err
		}
		if post.UserID != actingUserID {
			return models.NewForbiddenError("Only the comment's author or the post's author can delete it")
		}
	}

	return s.comments.Delete(ctx, commentID)
}
