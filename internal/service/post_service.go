package service

import (
	"context"

	"harbor/internal/models"
	"harbor/internal/repository"
	"harbor/internal/validation"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PostService manages posts, feeds, and likes.
type PostService struct {
	posts         repository.PostRepository
	notifications *NotificationService
}

// NewPostService creates a new PostService.
func NewPostService(posts repository.PostRepository, notifications *NotificationService) *PostService {
	return &PostService{posts: posts, notifications: notifications}
}

// LikeResult is the outcome of a like toggle: the viewer's final membership
// and the post's like count after the toggle.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// CreatePost stores a new post for the author. Content is HTML-escaped; a
// post needs content or an image, not necessarily both.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, content, imageURL string, privacy models.PostPrivacy) (*models.Post, error) {
	if validation.IsBlank(content) && validation.IsBlank(imageURL) {
		return nil, models.NewEmptyContentError("Post must have content or an image")
	}
	if len(content) > validation.MaxPostContentLength {
		return nil, models.NewInvalidInputError("Post content is too long")
	}

	switch privacy {
	case models.PostPrivacyPublic, models.PostPrivacyFriends:
	case "":
		privacy = models.PostPrivacyPublic
	default:
		return nil, models.NewInvalidInputError("Privacy must be 'public' or 'friends'")
	}

	post := &models.Post{
		Content:  validation.SanitizeContent(content),
		ImageURL: imageURL,
		Privacy:  privacy,
		UserID:   authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID, authorID)
}

// GetPost returns a post with counts computed for the viewer.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, postID, viewerID)
}

// ListFeed returns the viewer's feed page: their own posts, their friends'
// posts, and optionally all public posts. Page is 1-based.
func (s *PostService) ListFeed(ctx context.Context, viewerID uint, page, pageSize int, includePublic bool) ([]*models.Post, error) {
	limit, offset := clampPage(page, pageSize)
	return s.posts.ListFeed(ctx, viewerID, limit, offset, includePublic)
}

// ListUserPosts returns one author's posts, newest first.
func (s *PostService) ListUserPosts(ctx context.Context, authorID uint, page, pageSize int, viewerID uint) ([]*models.Post, error) {
	limit, offset := clampPage(page, pageSize)
	return s.posts.GetByUserID(ctx, authorID, limit, offset, viewerID)
}

// UpdatePost edits a post's content. Author only.
func (s *PostService) UpdatePost(ctx context.Context, postID, actingUserID uint, content string, privacy models.PostPrivacy) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID, actingUserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actingUserID {
		return nil, models.NewForbiddenError("Only the author can edit this post")
	}
	if validation.IsBlank(content) && validation.IsBlank(post.ImageURL) {
		return nil, models.NewEmptyContentError("Post must have content or an image")
	}
	if len(content) > validation.MaxPostContentLength {
		return nil, models.NewInvalidInputError("Post content is too long")
	}

	post.Content = validation.SanitizeContent(content)
	if privacy == models.PostPrivacyPublic || privacy == models.PostPrivacyFriends {
		post.Privacy = privacy
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, postID, actingUserID)
}

// DeletePost removes a post together with its comments and likes. Author only.
func (s *PostService) DeletePost(ctx context.Context, postID, actingUserID uint) error {
	post, err := s.posts.GetByID(ctx, postID, actingUserID)
	if err != nil {
		return err
	}
	if post.UserID != actingUserID {
		return models.NewForbiddenError("Only the author can delete this post")
	}
	return s.posts.Delete(ctx, postID)
}

// ToggleLike flips the user's like membership on a post and returns the final
// state. The count comes from membership, never a stored counter, so two
// racing toggles still converge on a consistent value.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (*LikeResult, error) {
	post, err := s.posts.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	liked, err := s.posts.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.posts.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.posts.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		s.notifications.Emit(ctx, models.NotificationLikePost, post.UserID, userID, &postID, nil)
	}

	count, err := s.posts.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: !liked, LikeCount: count}, nil
}

// clampPage converts a 1-based page and a page size into limit/offset with
// the size clamped to [1,100].
func clampPage(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
