package conninfo

import (
	"fmt"

	"github.com/k0sproject/conninfo/auth"
	"github.com/k0sproject/conninfo/log"
	"github.com/k0sproject/conninfo/proxy"
	ssh "golang.org/x/crypto/ssh"
)

func checkCredential(cred *Credential, needSecret bool) error {
	if cred == nil {
		return ErrInvalidCredential.Wrapf("credential is required")
	}
	if cred.Username == "" {
		return ErrInvalidCredential.Wrapf("username is required")
	}
	if needSecret && !cred.HasSecret() {
		return ErrInvalidCredential.Wrapf("password is required for user %s", cred.Username)
	}
	return nil
}

func resolveProxy(logger log.Logger, settings *proxy.Settings) (*proxy.Config, error) {
	if settings == nil || settings.Address == "" {
		return nil, nil //nolint:nilnil
	}

	if !proxy.IsKnown(settings.Type) {
		logger.Warn("unrecognized proxy type, using HTTP", log.KeyProxy, settings.Type)
	}

	cfg, err := settings.Resolve()
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}

	logger.Debug("routing through proxy", log.KeyProxy, cfg.String())

	return cfg, nil
}

// NewKeyConnectionInfo builds connection info for private key
// authentication. When combined is true the password from cred is presented
// before the key, for hosts that require both. The proxy settings may be
// nil, a proxy is only used when they have an address.
func NewKeyConnectionInfo(target Endpoint, key KeyMaterial, cred *Credential, proxySettings *ProxySettings, combined bool, opts ...Option) (*ConnectionInfo, error) {
	logger := NewOptions(opts...).LogWithAttrs(log.HostAttr(target))

	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if err := checkCredential(cred, combined); err != nil {
		return nil, err
	}

	proxyConfig, err := resolveProxy(logger, proxySettings)
	if err != nil {
		return nil, err
	}

	signer, err := key.Signer()
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}

	methods := make([]auth.Method, 0, 2) //nolint:gomnd
	if combined {
		methods = append(methods, auth.Password{User: cred.Username, Secret: cred.Secret})
	}
	methods = append(methods, auth.PrivateKey{User: cred.Username, Signer: signer})

	logger.Debug("built key connection info", log.KeyUser, cred.Username, log.KeyMethod, auth.Names(methods))

	return newConnectionInfo(target, cred.Username, proxyConfig, methods), nil
}

// NewPasswordConnectionInfo builds connection info for password
// authentication followed by keyboard-interactive authentication answered
// by challenge. The proxy settings may be nil.
func NewPasswordConnectionInfo(target Endpoint, cred *Credential, challenge ssh.KeyboardInteractiveChallenge, proxySettings *ProxySettings, opts ...Option) (*ConnectionInfo, error) {
	logger := NewOptions(opts...).LogWithAttrs(log.HostAttr(target))

	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if err := checkCredential(cred, true); err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, ErrValidationFailed.Wrapf("keyboard-interactive handler is required")
	}

	proxyConfig, err := resolveProxy(logger, proxySettings)
	if err != nil {
		return nil, err
	}

	methods := []auth.Method{
		auth.Password{User: cred.Username, Secret: cred.Secret},
		auth.KeyboardInteractive{Challenge: challenge},
	}

	logger.Debug("built password connection info", log.KeyUser, cred.Username, log.KeyMethod, auth.Names(methods))

	return newConnectionInfo(target, cred.Username, proxyConfig, methods), nil
}

// PasswordAndKeyCredential bundles a username and password with a private
// key for hosts that require both. Exactly one of KeyFile and KeyLines must
// be set.
type PasswordAndKeyCredential struct {
	Credential *Credential
	KeyFile    string
	KeyLines   []string
	Passphrase *Secret
}

// KeyMaterial returns the key material for the credential.
func (p *PasswordAndKeyCredential) KeyMaterial() (KeyMaterial, error) {
	switch {
	case p.KeyFile != "" && len(p.KeyLines) > 0:
		return KeyMaterial{}, ErrValidationFailed.Wrapf("both a key file and key content given")
	case p.KeyFile != "":
		return KeyMaterial{Source: KeyFile(p.KeyFile), Passphrase: p.Passphrase}, nil
	case len(p.KeyLines) > 0:
		return KeyMaterial{Source: KeyLines(p.KeyLines), Passphrase: p.Passphrase}, nil
	default:
		return KeyMaterial{}, ErrValidationFailed.Wrapf("no key file or key content given")
	}
}

// NewPasswordAndKeyConnectionInfo builds connection info that presents the
// password and then the private key from pkc.
func NewPasswordAndKeyConnectionInfo(target Endpoint, pkc *PasswordAndKeyCredential, proxySettings *ProxySettings, opts ...Option) (*ConnectionInfo, error) {
	if pkc == nil {
		return nil, ErrInvalidCredential.Wrapf("credential is required")
	}
	key, err := pkc.KeyMaterial()
	if err != nil {
		return nil, err
	}
	return NewKeyConnectionInfo(target, key, pkc.Credential, proxySettings, true, opts...)
}
