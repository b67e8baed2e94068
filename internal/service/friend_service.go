package service

import (
	"context"

	"harbor/internal/cache"
	"harbor/internal/middleware"
	"harbor/internal/models"
	"harbor/internal/repository"
)

// FriendService manages the friend-request state machine and the resulting
// friendship edges.
type FriendService struct {
	friends       repository.FriendRepository
	users         repository.UserRepository
	notifications *NotificationService
}

// NewFriendService creates a new FriendService.
func NewFriendService(friends repository.FriendRepository, users repository.UserRepository, notifications *NotificationService) *FriendService {
	return &FriendService{friends: friends, users: users, notifications: notifications}
}

// SendRequest creates a pending friend request from one user to another.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID uint) (*models.Friendship, error) {
	if fromID == toID {
		return nil, models.NewSelfReferenceError()
	}

	if _, err := s.users.GetByID(ctx, toID); err != nil {
		return nil, err
	}

	existing, err := s.friends.GetActiveBetween(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == models.FriendshipStatusAccepted {
			return nil, models.NewAlreadyFriendsError()
		}
		// Pending in either direction blocks a second request
		return nil, models.NewDuplicateRequestError()
	}

	friendship := &models.Friendship{
		RequesterID: fromID,
		AddresseeID: toID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friends.Create(ctx, friendship); err != nil {
		return nil, err
	}

	s.notifications.Emit(ctx, models.NotificationFriendRequest, toID, fromID, nil, nil)
	return friendship, nil
}

// Respond accepts or rejects a pending friend request. Only the addressee may
// respond, and only once; a lost race against another responder surfaces as
// ALREADY_RESOLVED.
func (s *FriendService) Respond(ctx context.Context, requestID, actingUserID uint, accept bool) (*models.Friendship, error) {
	friendship, err := s.friends.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if friendship.AddresseeID != actingUserID {
		return nil, models.NewForbiddenError("Only the request's recipient can respond to it")
	}
	if friendship.Resolved() {
		return nil, models.NewAlreadyResolvedError()
	}

	status := models.FriendshipStatusRejected
	if accept {
		status = models.FriendshipStatusAccepted
	}

	won, err := s.friends.ResolvePending(ctx, requestID, status)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, models.NewAlreadyResolvedError()
	}

	friendship.Status = status
	cache.InvalidateFriends(ctx, friendship.RequesterID)
	cache.InvalidateFriends(ctx, friendship.AddresseeID)

	if accept {
		s.notifications.Emit(ctx, models.NotificationFriendAccept, friendship.RequesterID, actingUserID, nil, nil)
	}

	middleware.Logger.InfoContext(ctx, "friend request resolved",
		"friendship_id", requestID, "status", status)
	return friendship, nil
}

// RemoveFriend deletes the friendship between two users. Removing an absent
// friendship is a no-op.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	return s.friends.RemoveFriendship(ctx, userID, friendID)
}

// ListFriends returns the user's friends in the order the friendships were
// formed.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	users, err := s.friends.GetFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

// ListPendingRequests returns requests awaiting the user's response.
func (s *FriendService) ListPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friends.GetPendingRequests(ctx, userID)
}

// ListSentRequests returns the user's own unanswered requests.
func (s *FriendService) ListSentRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friends.GetSentRequests(ctx, userID)
}

// Between reports the live friendship row between two users, or nil when
// there is none (rejected rows do not count).
func (s *FriendService) Between(ctx context.Context, userID, otherID uint) (*models.Friendship, error) {
	return s.friends.GetActiveBetween(ctx, userID, otherID)
}
