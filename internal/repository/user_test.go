package repository

import (
	"testing"

	"harbor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Username: "alice", Email: "Alice@Example.com", Password: "hash"}
	require.NoError(t, repo.Create(testCtx(), user))
	require.NotZero(t, user.ID)

	// Email is stored lowercased
	assert.Equal(t, "alice@example.com", user.Email)

	got, err := repo.GetByID(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestUserGetByEmailCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(testCtx(), &models.User{
		Username: "bob", Email: "bob@example.com", Password: "hash",
	}))

	got, err := repo.GetByEmail(testCtx(), "BOB@Example.COM")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bob", got.Username)

	// Missing users are (nil, nil), not an error
	missing, err := repo.GetByEmail(testCtx(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserCreateDuplicateIdentity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(testCtx(), &models.User{
		Username: "carol", Email: "carol@example.com", Password: "hash",
	}))

	cases := []struct {
		name string
		user models.User
	}{
		{"same email", models.User{Username: "carol2", Email: "carol@example.com", Password: "hash"}},
		{"same email different case", models.User{Username: "carol3", Email: "CAROL@example.com", Password: "hash"}},
		{"same username", models.User{Username: "carol", Email: "other@example.com", Password: "hash"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.Create(testCtx(), &tc.user)
			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, models.CodeDuplicateIdentity, appErr.Code)
		})
	}
}

func TestUserGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(testCtx(), 9999)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "dave")
	user.Bio = "sailing enthusiast"
	require.NoError(t, repo.Update(testCtx(), user))

	got, err := repo.GetByUsername(testCtx(), "dave")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "sailing enthusiast", got.Bio)
}

func TestUserList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	for _, name := range []string{"u1", "u2", "u3"} {
		createTestUser(t, db, name)
	}

	users, err := repo.List(testCtx(), 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	rest, err := repo.List(testCtx(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
