package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelfFollowRejected(t *testing.T) {
	env := newTestEnv(t)
	userSvc := NewUserService(env.users)
	social := NewSocialService(env.follows)

	alice := registerUser(t, userSvc, "alice")

	err := social.Follow(alice, alice)
	require.ErrorIs(t, err, ErrSelfFollow)

	followees, err := social.Followees(alice)
	require.NoError(t, err)
	require.Empty(t, followees)
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	userSvc := NewUserService(env.users)
	social := NewSocialService(env.follows)

	alice := registerUser(t, userSvc, "alice")
	bob := registerUser(t, userSvc, "bob")

	require.NoError(t, social.Follow(alice, bob))
	require.NoError(t, social.Follow(alice, bob))

	following, err := social.IsFollowing(alice, bob)
	require.NoError(t, err)
	require.True(t, following)

	followers, err := social.Followers(bob)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, "alice", followers[0].Username)

	require.NoError(t, social.Unfollow(alice, bob))
	following, err = social.IsFollowing(alice, bob)
	require.NoError(t, err)
	require.False(t, following)
}
