// Package auth defines the SSH authentication methods that make up a
// connection info's ordered method list.
package auth

import (
	"github.com/k0sproject/conninfo/secret"
	ssh "golang.org/x/crypto/ssh"
)

// Method names as used in the SSH protocol.
const (
	NamePublicKey           = "publickey"
	NamePassword            = "password"
	NameKeyboardInteractive = "keyboard-interactive"
)

// Method is one way of proving identity to the remote host. The
// implementations are PrivateKey, Password and KeyboardInteractive.
type Method interface {
	// Name returns the SSH protocol name of the method.
	Name() string
	// AuthMethod converts the method for use in an ssh.ClientConfig.
	AuthMethod() ssh.AuthMethod

	method()
}

// PrivateKey authenticates with a parsed private key.
type PrivateKey struct {
	User   string
	Signer ssh.Signer
}

// Name returns "publickey".
func (PrivateKey) Name() string { return NamePublicKey }

// AuthMethod returns ssh.PublicKeys for the signer.
func (m PrivateKey) AuthMethod() ssh.AuthMethod {
	return ssh.PublicKeys(m.Signer)
}

func (PrivateKey) method() {}

// Password authenticates with a password.
type Password struct {
	User   string
	Secret *secret.Secret
}

// Name returns "password".
func (Password) Name() string { return NamePassword }

// AuthMethod returns a password callback that reveals the secret only when
// the server asks for it.
func (m Password) AuthMethod() ssh.AuthMethod {
	return ssh.PasswordCallback(m.reveal)
}

func (m Password) reveal() (string, error) {
	var password string
	err := m.Secret.Reveal(func(b []byte) error {
		password = string(b)
		return nil
	})
	return password, err //nolint:wrapcheck
}

func (Password) method() {}

// KeyboardInteractive answers server issued challenges with a handler
// supplied by the session layer. The handler is not called while building
// connection info.
type KeyboardInteractive struct {
	Challenge ssh.KeyboardInteractiveChallenge
}

// Name returns "keyboard-interactive".
func (KeyboardInteractive) Name() string { return NameKeyboardInteractive }

// AuthMethod returns ssh.KeyboardInteractive for the handler.
func (m KeyboardInteractive) AuthMethod() ssh.AuthMethod {
	return ssh.KeyboardInteractive(m.Challenge)
}

func (KeyboardInteractive) method() {}

// Names returns the method names in order.
func Names(methods []Method) []string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name()
	}
	return names
}

// AuthMethods converts the methods in order.
func AuthMethods(methods []Method) []ssh.AuthMethod {
	am := make([]ssh.AuthMethod, len(methods))
	for i, m := range methods {
		am[i] = m.AuthMethod()
	}
	return am
}
