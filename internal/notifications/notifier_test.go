package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestUserChannelRoundTrip(t *testing.T) {
	assert.Equal(t, "notifications:user:42", UserChannel(42))
	assert.Equal(t, uint(42), UserIDFromChannel("notifications:user:42"))
	assert.Equal(t, uint(0), UserIDFromChannel("notifications:broadcast"))
	assert.Equal(t, uint(0), UserIDFromChannel("notifications:user:bogus"))
}

func TestPublishUserDelivered(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan [2]string, 1)
	err := n.StartPatternSubscriber(ctx, func(channel, payload string) {
		received <- [2]string{channel, payload}
	})
	require.NoError(t, err)

	// PSubscribe is established asynchronously; retry until delivery.
	deadline := time.After(2 * time.Second)
	for {
		require.NoError(t, n.PublishUser(ctx, 7, `{"type":"like_post"}`))
		select {
		case msg := <-received:
			assert.Equal(t, "notifications:user:7", msg[0])
			assert.Equal(t, `{"type":"like_post"}`, msg[1])
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("notification was never delivered")
		}
	}
}

func TestPublishBroadcastDelivered(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 1)
	err := n.StartPatternSubscriber(ctx, func(channel, payload string) {
		if channel == "notifications:broadcast" {
			received <- payload
		}
	})
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		require.NoError(t, n.PublishBroadcast(ctx, "maintenance soon"))
		select {
		case payload := <-received:
			assert.Equal(t, "maintenance soon", payload)
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatal("broadcast was never delivered")
		}
	}
}

func TestNilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	ctx := context.Background()

	assert.NoError(t, n.PublishUser(ctx, 1, "x"))
	assert.NoError(t, n.PublishBroadcast(ctx, "x"))
	assert.NoError(t, n.StartPatternSubscriber(ctx, func(string, string) {
		t.Fatal("handler should never fire without redis")
	}))
}

func TestHubRegisterLimits(t *testing.T) {
	h := NewHub()

	assert.Equal(t, 0, h.ConnectionCount(1))

	// Broadcast to a user with no connections must not panic.
	h.Broadcast(1, "hello")
	h.BroadcastAll("hello")
}
