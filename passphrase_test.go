package conninfo_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/k0sproject/conninfo"
	"github.com/stretchr/testify/require"
)

func pipePrompter(t *testing.T, input string) (*conninfo.TerminalPrompter, *bytes.Buffer) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out := &bytes.Buffer{}
	return &conninfo.TerminalPrompter{In: r, Out: out}, out
}

func TestTerminalPrompterPassword(t *testing.T) {
	p, out := pipePrompter(t, "hunter2\nsecond\r\n")

	pw, err := p.Password("Password: ")
	require.NoError(t, err)
	require.Equal(t, "Password: ", out.String())
	require.NotContains(t, pw.String(), "hunter2")
	require.NoError(t, pw.Reveal(func(b []byte) error {
		require.Equal(t, "hunter2", string(b))
		return nil
	}))

	pw, err = p.Password("Again: ")
	require.NoError(t, err)
	require.NoError(t, pw.Reveal(func(b []byte) error {
		require.Equal(t, "second", string(b))
		return nil
	}))

	_, err = p.Password("Eof: ")
	require.Error(t, err)
}

func TestTerminalPrompterChallenge(t *testing.T) {
	p, out := pipePrompter(t, "123456\nyes\n")

	answers, err := p.Challenge()("", "Two factor", []string{"Code: ", "Trust device? "}, []bool{false, true})
	require.NoError(t, err)
	require.Equal(t, []string{"123456", "yes"}, answers)
	require.Equal(t, "Two factor\nCode: Trust device? ", out.String())
}
