package auth_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/k0sproject/conninfo/auth"
	"github.com/k0sproject/conninfo/secret"
	"github.com/stretchr/testify/require"
	ssh "golang.org/x/crypto/ssh"
)

func TestNames(t *testing.T) {
	methods := []auth.Method{
		auth.Password{User: "alice", Secret: secret.New("pw")},
		auth.PrivateKey{User: "alice"},
		auth.KeyboardInteractive{},
	}
	require.Equal(t, []string{"password", "publickey", "keyboard-interactive"}, auth.Names(methods))
}

func TestAuthMethods(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := ssh.NewSignerFromKey(priv)
	require.NoError(t, err)

	challenge := func(_, _ string, questions []string, _ []bool) ([]string, error) {
		return make([]string, len(questions)), nil
	}

	methods := []auth.Method{
		auth.Password{User: "alice", Secret: secret.New("pw")},
		auth.PrivateKey{User: "alice", Signer: signer},
		auth.KeyboardInteractive{Challenge: challenge},
	}

	am := auth.AuthMethods(methods)
	require.Len(t, am, 3)
	for _, m := range am {
		require.NotNil(t, m)
	}
}
