package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix    = "user:%d"
	postKeyPrefix    = "post:%d"
	friendsKeyPrefix = "friends:%d"
	revokedKeyPrefix = "session:revoked:%s"
)

const (
	UserTTL    = 5 * time.Minute
	PostTTL    = 30 * time.Minute
	FriendsTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func FriendsKey(userID uint) string {
	return fmt.Sprintf(friendsKeyPrefix, userID)
}

func revokedKey(jti string) string {
	return fmt.Sprintf(revokedKeyPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateFriends(ctx context.Context, userID uint) {
	Invalidate(ctx, FriendsKey(userID))
}

// RevokeSession marks a session token's jti as revoked until the token would
// have expired on its own.
func RevokeSession(ctx context.Context, jti string, until time.Time) error {
	if client == nil || jti == "" {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

// IsSessionRevoked reports whether the jti has been revoked. Without Redis
// there is no denylist, so tokens stay valid until expiry.
func IsSessionRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, revokedKey(jti)).Result()
	return err == nil && n > 0
}
