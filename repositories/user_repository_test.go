package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tweetapp/database"
	"tweetapp/models"
)

func TestUserCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h", JoinedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	found, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
}

func TestUserFindMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByUsername("nobody")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	first := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h", JoinedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(first))

	dup := &models.User{Username: "alice", Email: "other@example.com", PasswordHash: "h", JoinedAt: time.Now().UTC()}
	err := repo.Create(dup)
	require.Error(t, err)
	require.True(t, database.IsUniqueViolation(err))

	// Failed insert leaves no partial state behind.
	count, err := repo.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	first := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h", JoinedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(first))

	dup := &models.User{Username: "bob", Email: "alice@example.com", PasswordHash: "h", JoinedAt: time.Now().UTC()}
	err := repo.Create(dup)
	require.Error(t, err)
	require.True(t, database.IsUniqueViolation(err))

	count, err := repo.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
