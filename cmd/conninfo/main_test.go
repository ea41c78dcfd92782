package main

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k0sproject/conninfo"
	"github.com/stretchr/testify/require"
	ssh "golang.org/x/crypto/ssh"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestProxyKind(t *testing.T) {
	out, err := execute(t, "proxy-kind", "Socks5")
	require.NoError(t, err)
	require.Equal(t, "Socks5 (socks5)\n", out)

	out, err = execute(t, "proxy-kind", "socks5")
	require.NoError(t, err)
	require.Contains(t, out, "HTTP (http, unrecognized label \"socks5\")")
}

func TestInspectMissingHostsFile(t *testing.T) {
	_, err := execute(t, "inspect", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func noSSHConfig(t *testing.T) {
	t.Helper()
	origGet, origGetAll := conninfo.SSHConfigGet, conninfo.SSHConfigGetAll
	t.Cleanup(func() {
		conninfo.SSHConfigGet = origGet
		conninfo.SSHConfigGetAll = origGetAll
	})
	conninfo.SSHConfigGet = func(string, string) string { return "" }
	conninfo.SSHConfigGetAll = func(string, string) []string { return nil }
}

func writeHostsFile(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "test")
	require.NoError(t, err)

	var keyContent strings.Builder
	keyContent.WriteString("    keyContent:\n")
	for _, line := range strings.Split(strings.TrimSuffix(string(pem.EncodeToMemory(block)), "\n"), "\n") {
		keyContent.WriteString("      - '" + line + "'\n")
	}

	var sb strings.Builder
	sb.WriteString("hosts:\n  - address: 10.0.0.1\n")
	sb.WriteString(keyContent.String())
	sb.WriteString("  - address: 10.0.0.2\n    port: 2222\n    user: alice\n")
	sb.WriteString(keyContent.String())
	sb.WriteString("    proxy:\n      type: Socks5\n      address: proxy1\n      port: 1080\n")

	path := filepath.Join(t.TempDir(), "hosts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))
	return path
}

func TestInspect(t *testing.T) {
	noSSHConfig(t)
	path := writeHostsFile(t)

	t.Run("all hosts", func(t *testing.T) {
		out, err := execute(t, "inspect", "--config", path)
		require.NoError(t, err)
		require.Equal(t, "10.0.0.1\troot@10.0.0.1:22 (publickey)\n10.0.0.2\talice@10.0.0.2:2222 via socks5://proxy1:1080 (publickey)\n", out)
	})

	t.Run("named host", func(t *testing.T) {
		out, err := execute(t, "inspect", "--config", path, "10.0.0.2")
		require.NoError(t, err)
		require.Equal(t, "10.0.0.2\talice@10.0.0.2:2222 via socks5://proxy1:1080 (publickey)\n", out)
	})

	t.Run("unknown host", func(t *testing.T) {
		_, err := execute(t, "inspect", "--config", path, "10.0.0.3")
		require.ErrorIs(t, err, conninfo.ErrNotFound)
	})
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "proxy-kind", "HTTP", "--log-level", "loud")
	require.Error(t, err)
	_, err = execute(t, "proxy-kind", "HTTP", "--log-level", "warn")
	require.NoError(t, err)
}
