package secret_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/awnumar/memguard"
	"github.com/k0sproject/conninfo/secret"
	"github.com/stretchr/testify/require"
)

func TestReveal(t *testing.T) {
	s := secret.New("hunter2")
	require.False(t, s.IsEmpty())

	var got string
	require.NoError(t, s.Reveal(func(b []byte) error {
		got = string(b)
		return nil
	}))
	require.Equal(t, "hunter2", got)
}

func TestRevealPropagatesError(t *testing.T) {
	errTest := errors.New("test")
	err := secret.New("x").Reveal(func(_ []byte) error { return errTest })
	require.ErrorIs(t, err, errTest)
}

func TestFromBytesWipesInput(t *testing.T) {
	in := []byte("passphrase")
	s := secret.FromBytes(in)
	require.Equal(t, make([]byte, len(in)), in)
	equal, err := s.Equal(secret.New("passphrase"))
	require.NoError(t, err)
	require.True(t, equal)
}

func TestEmpty(t *testing.T) {
	for _, s := range []*secret.Secret{nil, {}, secret.New("")} {
		require.True(t, s.IsEmpty())
		require.NoError(t, s.Reveal(func(b []byte) error {
			require.Empty(t, b)
			return nil
		}))
	}
}

func TestEqual(t *testing.T) {
	for _, tc := range []struct {
		a, b  *secret.Secret
		equal bool
	}{
		{secret.New("a"), secret.New("a"), true},
		{secret.New("a"), secret.New("b"), false},
		{secret.New("a"), nil, false},
		{secret.New(""), nil, true},
	} {
		equal, err := tc.a.Equal(tc.b)
		require.NoError(t, err)
		require.Equal(t, tc.equal, equal)
	}
}

func TestEqualOpenFailure(t *testing.T) {
	stale := secret.New("a")
	// purging replaces the session key, enclaves sealed before can not be opened
	memguard.Purge()

	_, err := stale.Equal(secret.New("a"))
	require.Error(t, err)
}

func TestDestroy(t *testing.T) {
	s := secret.New("hunter2")
	s.Destroy()
	require.True(t, s.IsEmpty())

	var nilSecret *secret.Secret
	require.NotPanics(t, nilSecret.Destroy)
}

func TestNeverPrinted(t *testing.T) {
	s := secret.New("hunter2")
	require.Equal(t, secret.Mask, s.String())
	require.Equal(t, secret.Mask, fmt.Sprintf("%v", s))
	require.Equal(t, secret.Mask, fmt.Sprintf("%#v", s))
	require.NotContains(t, fmt.Sprint(secret.NewCredential("alice", "hunter2")), "hunter2")
}

func TestCredential(t *testing.T) {
	t.Run("with secret", func(t *testing.T) {
		c := secret.NewCredential("alice", "pw")
		require.True(t, c.HasSecret())
		require.Equal(t, "alice:"+secret.Mask, c.String())
	})

	t.Run("username only", func(t *testing.T) {
		c := &secret.Credential{Username: "alice"}
		require.False(t, c.HasSecret())
		require.Equal(t, "alice", c.String())
	})

	t.Run("nil", func(t *testing.T) {
		var c *secret.Credential
		require.False(t, c.HasSecret())
	})
}
