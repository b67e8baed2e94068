package repository

import (
	"testing"

	"harbor/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

// The accept/reject update must be guarded on the pending status so two
// concurrent responders cannot both transition the same request.
func TestResolvePendingIssuesGuardedUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectExec(`UPDATE "friendships" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 5, string(models.FriendshipStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := repo.ResolvePending(testCtx(), 5, models.FriendshipStatusAccepted)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolvePendingLosesWhenRowAlreadyResolved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFriendRepository(db)

	mock.ExpectExec(`UPDATE "friendships"`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 5, string(models.FriendshipStatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.ResolvePending(testCtx(), 5, models.FriendshipStatusRejected)
	require.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}
