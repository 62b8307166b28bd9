package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLikeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeRepository(db)
	messages := NewMessageRepository(db)
	alice := newTestUser(t, db, "alice")

	msg, err := messages.Create(alice.ID, "hello")
	require.NoError(t, err)

	require.NoError(t, likes.Like(alice.ID, msg.ID))
	require.NoError(t, likes.Like(alice.ID, msg.ID))

	count, err := likes.CountFor(msg.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	liked, err := likes.HasLiked(alice.ID, msg.ID)
	require.NoError(t, err)
	require.True(t, liked)
}

func TestUnlike(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeRepository(db)
	messages := NewMessageRepository(db)
	alice := newTestUser(t, db, "alice")

	msg, err := messages.Create(alice.ID, "hello")
	require.NoError(t, err)

	require.NoError(t, likes.Like(alice.ID, msg.ID))
	require.NoError(t, likes.Unlike(alice.ID, msg.ID))

	count, err := likes.CountFor(msg.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	// Unliking again stays a no-op.
	require.NoError(t, likes.Unlike(alice.ID, msg.ID))
}

func TestLikeBatchQueries(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeRepository(db)
	messages := NewMessageRepository(db)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	first, err := messages.Create(alice.ID, "first")
	require.NoError(t, err)
	second, err := messages.Create(alice.ID, "second")
	require.NoError(t, err)
	third, err := messages.Create(alice.ID, "third")
	require.NoError(t, err)

	require.NoError(t, likes.Like(alice.ID, first.ID))
	require.NoError(t, likes.Like(bob.ID, first.ID))
	require.NoError(t, likes.Like(bob.ID, second.ID))

	ids := []uint{first.ID, second.ID, third.ID}

	counts, err := likes.CountsFor(ids)
	require.NoError(t, err)
	require.EqualValues(t, 2, counts[first.ID])
	require.EqualValues(t, 1, counts[second.ID])
	require.EqualValues(t, 0, counts[third.ID])

	bobLiked, err := likes.LikedSet(bob.ID, ids)
	require.NoError(t, err)
	require.True(t, bobLiked[first.ID])
	require.True(t, bobLiked[second.ID])
	require.False(t, bobLiked[third.ID])
}

func TestLikeBatchQueriesEmptyInput(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeRepository(db)
	alice := newTestUser(t, db, "alice")

	counts, err := likes.CountsFor(nil)
	require.NoError(t, err)
	require.Empty(t, counts)

	liked, err := likes.LikedSet(alice.ID, nil)
	require.NoError(t, err)
	require.Empty(t, liked)
}
