package models

import "time"

// NotificationType identifies what a notification is about.
type NotificationType string

const (
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationFriendAccept  NotificationType = "friend_accept"
	NotificationLikePost      NotificationType = "like_post"
	NotificationCommentPost   NotificationType = "comment_post"
)

// Notification is a stored record of a side-effect event targeted at a user.
// Delivery is best-effort: creating one must never fail the operation that
// triggered it.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	ActorID   uint             `gorm:"not null" json:"actor_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	PostID    *uint            `json:"post_id,omitempty"`
	CommentID *uint            `json:"comment_id,omitempty"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`

	// Relationships
	Actor User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
