package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users)

	created, err := svc.Register("alice", "alice@example.com", "hunter2")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotEqual(t, "hunter2", created.PasswordHash)

	authed, err := svc.Authenticate("alice", "hunter2")
	require.NoError(t, err)
	require.Equal(t, created.ID, authed.ID)
	require.Equal(t, created.Username, authed.Username)
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users)

	_, err := svc.Register("alice", "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register("alice", "fresh@example.com", "pw")
	require.ErrorIs(t, err, ErrDuplicateIdentity)

	_, err = svc.Register("fresh", "alice@example.com", "pw")
	require.ErrorIs(t, err, ErrDuplicateIdentity)

	count, err := env.users.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestAuthenticateFailures(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users)

	_, err := svc.Register("alice", "alice@example.com", "hunter2")
	require.NoError(t, err)

	// Unknown user and wrong password come back indistinguishable.
	_, err = svc.Authenticate("nobody", "hunter2")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
