package conninfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/k0sproject/conninfo/secret"
	ssh "golang.org/x/crypto/ssh"
	"golang.org/x/term"
)

// TerminalPrompter asks for passwords and keyboard-interactive answers on a
// terminal. Hidden input is read without echo.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer

	once   sync.Once
	reader *bufio.Reader
}

// DefaultPrompter returns a TerminalPrompter reading from stdin and writing
// prompts to stderr.
func DefaultPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

func (t *TerminalPrompter) lineReader() *bufio.Reader {
	t.once.Do(func() {
		t.reader = bufio.NewReader(t.In)
	})
	return t.reader
}

func (t *TerminalPrompter) readHidden() ([]byte, error) {
	fd := int(t.In.Fd())
	if !term.IsTerminal(fd) {
		line, err := t.lineReader().ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(t.Out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pass, nil
}

// Password prints the prompt and reads a password without echo.
func (t *TerminalPrompter) Password(prompt string) (*secret.Secret, error) {
	fmt.Fprint(t.Out, prompt)
	pass, err := t.readHidden()
	if err != nil {
		return nil, err
	}
	return secret.FromBytes(pass), nil
}

// Challenge returns a keyboard-interactive handler that prints the
// instruction and asks each question, hiding the answer unless the server
// asked for it to be echoed.
func (t *TerminalPrompter) Challenge() ssh.KeyboardInteractiveChallenge {
	return func(name, instruction string, questions []string, echos []bool) ([]string, error) {
		if name != "" {
			fmt.Fprintln(t.Out, name)
		}
		if instruction != "" {
			fmt.Fprintln(t.Out, instruction)
		}

		answers := make([]string, len(questions))
		for i, q := range questions {
			fmt.Fprint(t.Out, q)
			if i < len(echos) && echos[i] {
				line, err := t.lineReader().ReadString('\n')
				if err != nil && (err != io.EOF || line == "") {
					return nil, fmt.Errorf("read answer: %w", err)
				}
				answers[i] = strings.TrimRight(line, "\r\n")
				continue
			}
			pass, err := t.readHidden()
			if err != nil {
				return nil, err
			}
			answers[i] = string(pass)
			clear(pass)
		}
		return answers, nil
	}
}
