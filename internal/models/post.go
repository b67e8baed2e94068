// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PostPrivacy controls who sees a post in feeds.
type PostPrivacy string

const (
	// PostPrivacyPublic makes a post visible to every viewer.
	PostPrivacyPublic PostPrivacy = "public"
	// PostPrivacyFriends restricts a post to the author's friends.
	PostPrivacyFriends PostPrivacy = "friends"
)

// Post represents a post in the Harbor application. Content is stored
// HTML-escaped; renderers must not re-interpret it as markup.
type Post struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	Content  string      `gorm:"type:text" json:"content"`
	ImageURL string      `json:"image_url"`
	Privacy  PostPrivacy `gorm:"type:varchar(20);default:'public'" json:"privacy"`
	UserID   uint        `gorm:"not null;index" json:"user_id"`
	User     User        `gorm:"foreignKey:UserID" json:"user"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
