package server

import (
	"fmt"
	"net/http"
	"testing"

	"harbor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRequestLifecycleOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)

	aliceToken, aliceID := signupUser(t, app, "alice")
	bobToken, bobID := signupUser(t, app, "bob")

	// Alice cannot befriend herself
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeSelfReference, decodeBody(t, resp)["code"])

	// Alice sends a request to Bob
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	request := decodeBody(t, resp)
	requestID := uint(request["id"].(float64))
	assert.Equal(t, "pending", request["status"])

	// Sending it again is a duplicate
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeDuplicateRequest, decodeBody(t, resp)["code"])

	// Bob sees it pending; Alice sees it sent
	resp = doJSON(t, app, http.MethodGet, "/api/friends/requests", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)

	resp = doJSON(t, app, http.MethodGet, "/api/friends/requests/sent", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)

	// Alice cannot accept her own request
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d/accept", requestID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// Bob accepts
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d/accept", requestID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "accepted", decodeBody(t, resp)["status"])

	// Accepting twice is already resolved
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d/accept", requestID), bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeAlreadyResolved, decodeBody(t, resp)["code"])

	// Both friend lists show the edge
	resp = doJSON(t, app, http.MethodGet, "/api/friends/", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	aliceFriends := decodeList(t, resp)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, "bob", aliceFriends[0]["username"])

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "accepted", decodeBody(t, resp)["status"])

	// Removal is symmetric and idempotent
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/friends/%d", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/friends/%d", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/friends/", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeList(t, resp))
}

func TestRejectedRequestAllowsRetry(t *testing.T) {
	app, _ := newTestApp(t)

	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, bobID := signupUser(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	requestID := uint(decodeBody(t, resp)["id"].(float64))

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d/reject", requestID), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rejected", decodeBody(t, resp)["status"])

	// Rejection leaves no live relationship and permits a fresh request
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "none", decodeBody(t, resp)["status"])

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSendRequestToMissingUser(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/friends/requests/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, models.CodeNotFound, decodeBody(t, resp)["code"])
}
