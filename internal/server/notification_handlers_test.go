package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")

	postID := createPost(t, app, aliceToken, "like me", "public")
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Alice has one unread like_post notification
	resp = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decodeBody(t, resp)["count"])

	resp = doJSON(t, app, http.MethodGet, "/api/notifications/", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notifs := decodeList(t, resp)
	require.Len(t, notifs, 1)
	assert.Equal(t, "like_post", notifs[0]["type"])
	assert.Equal(t, false, notifs[0]["is_read"])
	notifID := uint(notifs[0]["id"].(float64))

	// Bob cannot mark Alice's notification
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", notifID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", notifID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), decodeBody(t, resp)["count"])
}

func TestMarkAllNotificationsRead(t *testing.T) {
	app, _ := newTestApp(t)

	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")
	carolToken, _ := signupUser(t, app, "carol")

	postID := createPost(t, app, aliceToken, "popular", "public")
	for _, token := range []string{bobToken, carolToken} {
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodPost, "/api/notifications/read-all", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/notifications/unread-count", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), decodeBody(t, resp)["count"])
}
