// Package models contains data structures for the application's domain models.
package models

import "time"

// FriendshipStatus represents the status of a friendship request.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a friend request awaiting a response.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an established friendship.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	// FriendshipStatusRejected indicates a declined friend request.
	// Rejected rows are terminal and retained; a fresh request between the
	// same pair may be sent afterward.
	FriendshipStatusRejected FriendshipStatus = "rejected"
)

// Friendship is both the friend request and, once accepted, the friendship
// edge between two users. Keeping the edge in a single row means acceptance
// is one atomic update, never a two-sided list write.
type Friendship struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;index:idx_friendship_pair" json:"requester_id"`
	AddresseeID uint             `gorm:"not null;index:idx_friendship_pair" json:"addressee_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// Resolved reports whether the request has reached a terminal status.
func (f *Friendship) Resolved() bool {
	return f.Status != FriendshipStatusPending
}
