// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"harbor/internal/cache"
	"harbor/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend data operations
type FriendRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	GetByID(ctx context.Context, id uint) (*models.Friendship, error)
	GetActiveBetween(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error)
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error)
	GetSentRequests(ctx context.Context, userID uint) ([]models.Friendship, error)
	ResolvePending(ctx context.Context, friendshipID uint, status models.FriendshipStatus) (bool, error)
	RemoveFriendship(ctx context.Context, userID1, userID2 uint) error
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateFriends(ctx, friendship.RequesterID)
	cache.InvalidateFriends(ctx, friendship.AddresseeID)
	return nil
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).Preload("Requester").Preload("Addressee").First(&friendship, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &friendship, nil
}

// GetActiveBetween finds a pending or accepted row between two users in
// either direction. Rejected rows are terminal history and do not block a
// fresh request, so they are excluded. Returns (nil, nil) when none exists.
func (r *friendRepository) GetActiveBetween(ctx context.Context, userID1, userID2 uint) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []models.FriendshipStatus{
			models.FriendshipStatusPending,
			models.FriendshipStatusAccepted,
		}).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStorageError(err)
	}
	return &friendship, nil
}

// GetFriends returns the users on the other end of every accepted friendship,
// in friendship insertion order so listings are stable.
func (r *friendRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User

	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friendships f ON (users.id = f.requester_id OR users.id = f.addressee_id)").
		Where("f.status = ? AND (f.requester_id = ? OR f.addressee_id = ?) AND users.id != ?",
			models.FriendshipStatusAccepted, userID, userID, userID).
		Order("f.id ASC").
		Find(&users).Error; err != nil {
		return nil, models.NewStorageError(err)
	}

	return users, nil
}

func (r *friendRepository) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship

	// Pending requests where user is the addressee
	if err := r.db.WithContext(ctx).
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Requester").
		Preload("Addressee").
		Find(&friendships).Error; err != nil {
		return nil, models.NewStorageError(err)
	}

	return friendships, nil
}

func (r *friendRepository) GetSentRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	var friendships []models.Friendship

	// Pending requests where user is the requester
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Requester").
		Preload("Addressee").
		Find(&friendships).Error; err != nil {
		return nil, models.NewStorageError(err)
	}

	return friendships, nil
}

// ResolvePending transitions a request out of pending in one guarded update.
// Returns false when the row was not pending anymore, so concurrent
// responders cannot both win.
func (r *friendRepository) ResolvePending(ctx context.Context, friendshipID uint, status models.FriendshipStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("id = ? AND status = ?", friendshipID, models.FriendshipStatusPending).
		Update("status", status)
	if result.Error != nil {
		return false, models.NewStorageError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RemoveFriendship deletes the accepted row between two users. Idempotent:
// deleting an absent friendship is not an error.
func (r *friendRepository) RemoveFriendship(ctx context.Context, userID1, userID2 uint) error {
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.FriendshipStatusAccepted).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID1, userID2, userID2, userID1).
		Delete(&models.Friendship{}).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateFriends(ctx, userID1)
	cache.InvalidateFriends(ctx, userID2)
	return nil
}
