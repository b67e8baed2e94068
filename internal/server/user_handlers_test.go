package server

import (
	"fmt"
	"net/http"
	"testing"

	"harbor/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProfileReadAndUpdate(t *testing.T) {
	app, _ := newTestApp(t)
	token, id := signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody(t, resp)
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, float64(id), me["id"])

	resp = doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
		"bio":    "gardener & <b>cook</b>",
		"avatar": "https://example.com/alice.png",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	me = decodeBody(t, resp)
	assert.Equal(t, "gardener &amp; &lt;b&gt;cook&lt;/b&gt;", me["bio"])
	assert.Equal(t, "https://example.com/alice.png", me["avatar"])

	// Username stays untouched when omitted from the update.
	assert.Equal(t, "alice", me["username"])
}

func TestProfileUpdateRejectsBadInput(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
		"avatar": "not-a-url",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
		"username": "x",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeInvalidInput, decodeBody(t, resp)["code"])
}

func TestViewOtherUserAndTheirPosts(t *testing.T) {
	app, _ := newTestApp(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, bobID := signupUser(t, app, "bob")

	createPost(t, app, bobToken, "bob public post", "public")
	createPost(t, app, bobToken, "bob friends post", "friends")

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decodeBody(t, resp)
	assert.Equal(t, "bob", profile["username"])
	// Password digest never leaves the API.
	_, exposed := profile["password"]
	assert.False(t, exposed)

	// A stranger only sees bob's public posts.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/posts", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	posts := decodeList(t, resp)
	assert.Len(t, posts, 1)
	assert.Equal(t, "bob public post", posts[0]["content"])

	// Bob sees both of his own posts.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/posts", bobID), bobToken, nil)
	assert.Len(t, decodeList(t, resp), 2)

	resp = doJSON(t, app, http.MethodGet, "/api/users/", aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)
}
