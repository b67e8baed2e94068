package server

import (
	"net/http"
	"testing"

	"harbor/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	app, _ := newTestApp(t)

	token, _ := signupUser(t, app, "alice")

	// The signup token authorizes protected routes
	resp := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "alice", body["username"])

	// Password digest never leaves the API
	_, exposed := body["password"]
	assert.False(t, exposed)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
}

func TestSignupRejectsBadInput(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		name string
		body fiber.Map
		code string
	}{
		{"missing fields", fiber.Map{"username": "alice"}, models.CodeInvalidInput},
		{"short password", fiber.Map{"username": "alice", "email": "a@example.com", "password": "123"}, models.CodeInvalidInput},
		{"bad email", fiber.Map{"username": "alice", "email": "nope", "password": "secret123"}, models.CodeInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestSignupDuplicateConflicts(t *testing.T) {
	app, _ := newTestApp(t)
	signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"username": "alice2", "email": "ALICE@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, models.CodeDuplicateIdentity, body["code"])
}

func TestLoginFailureIsUniform(t *testing.T) {
	app, _ := newTestApp(t)
	signupUser(t, app, "alice")

	respUnknown := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ghost@example.com", "password": "secret123",
	})
	respWrongPw := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "alice@example.com", "password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
	require.Equal(t, http.StatusUnauthorized, respWrongPw.StatusCode)

	// Byte-identical error payloads: nothing distinguishes the two failures
	assert.Equal(t, decodeBody(t, respUnknown), decodeBody(t, respWrongPw))
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/api/users/me", "/api/friends/", "/api/posts/feed", "/api/notifications/"} {
		resp := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		_ = resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/users/me", "not-a-valid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, models.CodeUnauthenticated, body["code"])
}

func TestRefreshReturnsWorkingToken(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	fresh, _ := body["token"].(string)
	require.NotEmpty(t, fresh)

	resp = doJSON(t, app, http.MethodGet, "/api/users/me", fresh, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
