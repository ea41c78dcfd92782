package conninfo

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/k0sproject/conninfo/log"
	"github.com/k0sproject/conninfo/proxy"
	"github.com/k0sproject/conninfo/secret"
	"github.com/kevinburke/ssh_config"
	ssh "golang.org/x/crypto/ssh"
	"gopkg.in/yaml.v3"
)

// Prompter supplies the secrets a host configuration does not contain.
type Prompter interface {
	// Password asks for a password or passphrase, prompt tells what for.
	Password(prompt string) (*secret.Secret, error)
	// Challenge returns the keyboard-interactive handler.
	Challenge() ssh.KeyboardInteractiveChallenge
}

// Config is a set of host configurations, usually read from a YAML file.
type Config struct {
	Hosts []*HostConfig `yaml:"hosts"`
}

// LoadConfig decodes a YAML hosts file and sets defaults on every host.
func LoadConfig(r io.Reader) (*Config, error) {
	config := &Config{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrValidationFailed.Wrap(err)
	}

	for i, h := range config.Hosts {
		if h == nil {
			return nil, ErrValidationFailed.Wrapf("hosts[%d]: empty host entry", i)
		}
		if err := h.SetDefaults(); err != nil {
			return nil, fmt.Errorf("hosts[%d]: %w", i, err)
		}
	}

	return config, nil
}

// Host returns the host configuration by the name it was configured with.
func (c *Config) Host(name string) (*HostConfig, bool) {
	for _, h := range c.Hosts {
		if h.Name() == name || h.Address == name {
			return h, true
		}
	}
	return nil, false
}

// ProxyConfig is the proxy section of a host configuration.
type ProxyConfig struct {
	Type    string `yaml:"type" default:"HTTP"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
	// User for the proxy leg. For HTTP and SOCKS5 proxies the password is
	// asked from the Prompter.
	User string `yaml:"user,omitempty"`
}

// HostConfig describes one SSH host and how to authenticate to it.
type HostConfig struct {
	log.LoggerInjectable `yaml:"-"`

	Endpoint     `yaml:",inline"`
	User         string       `yaml:"user" default:"root"`
	KeyPath      *string      `yaml:"keyPath,omitempty"`
	KeyContent   []string     `yaml:"keyContent,omitempty"`
	CombinedAuth bool         `yaml:"combinedAuth,omitempty"`
	Proxy        *ProxyConfig `yaml:"proxy,omitempty"`

	alias string
}

// SSHConfigGet by default points to ssh_config package's Get() function
// you can override it with your own implementation for testing purposes
var SSHConfigGet = ssh_config.Get

// SSHConfigGetAll by default points to ssh_config package's GetAll() function
// you can override it with your own implementation for testing purposes
var SSHConfigGetAll = ssh_config.GetAll

// Name returns the name the host was configured with, which may be an
// alias resolved through the ssh configuration.
func (h *HostConfig) Name() string {
	if h.alias != "" {
		return h.alias
	}
	return h.Address
}

// String returns the host's printable name.
func (h *HostConfig) String() string {
	return "[ssh] " + h.Endpoint.Addr()
}

// SetDefaults fills unset fields from the user's ssh configuration and then
// from the struct defaults.
func (h *HostConfig) SetDefaults() error {
	h.alias = h.Address

	if hostname := SSHConfigGet(h.alias, "HostName"); hostname != "" && !strings.Contains(hostname, "%") {
		h.Address = hostname
	}

	if h.User == "" {
		h.User = SSHConfigGet(h.alias, "User")
	}

	if h.Port == 0 {
		if port, err := strconv.Atoi(SSHConfigGet(h.alias, "Port")); err == nil {
			h.Port = port
		}
	}

	if h.KeyPath == nil && len(h.KeyContent) == 0 {
		for _, idf := range SSHConfigGetAll(h.alias, "IdentityFile") {
			if idf == "" || idf == ssh_config.Default("IdentityFile") {
				continue
			}
			path := idf
			h.KeyPath = &path
			break
		}
	}

	if err := defaults.Set(h); err != nil {
		return fmt.Errorf("set defaults: %w", err)
	}

	return nil
}

// Validate returns an error if the configuration is invalid.
func (h *HostConfig) Validate() error {
	if err := h.Endpoint.Validate(); err != nil {
		return fmt.Errorf("%s: %w", h.Name(), err)
	}
	if h.KeyPath != nil && len(h.KeyContent) > 0 {
		return ErrValidationFailed.Wrapf("%s: keyPath and keyContent are mutually exclusive", h.Name())
	}
	if h.Proxy != nil && h.Proxy.Address == "" {
		return ErrValidationFailed.Wrapf("%s: proxy address is required", h.Name())
	}
	return nil
}

func (h *HostConfig) keySource() KeySource {
	switch {
	case h.KeyPath != nil:
		return KeyFile(*h.KeyPath)
	case len(h.KeyContent) > 0:
		return KeyLines(h.KeyContent)
	default:
		return nil
	}
}

func (h *HostConfig) proxySettings(p Prompter) (*ProxySettings, error) {
	if h.Proxy == nil {
		return nil, nil //nolint:nilnil
	}

	settings := &ProxySettings{
		Type:    h.Proxy.Type,
		Address: h.Proxy.Address,
		Port:    h.Proxy.Port,
	}

	if h.Proxy.User == "" {
		return settings, nil
	}

	settings.Credential = &Credential{Username: h.Proxy.User}
	if proxy.Resolve(h.Proxy.Type) == proxy.KindSOCKS4 {
		// socks4 only carries a user id
		return settings, nil
	}

	pw, err := p.Password(fmt.Sprintf("Password for proxy %s@%s: ", h.Proxy.User, h.Proxy.Address))
	if err != nil {
		return nil, fmt.Errorf("proxy password: %w", err)
	}
	settings.Credential.Secret = pw

	return settings, nil
}

// ConnectionInfo builds the connection info for the host. Hosts with a key
// use private key authentication, combined with a password when
// CombinedAuth is set. Hosts without a key use password and
// keyboard-interactive authentication.
func (h *HostConfig) ConnectionInfo(p Prompter, opts ...Option) (*ConnectionInfo, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	if h.HasLogger() {
		opts = append([]Option{WithLogger(h.Log())}, opts...)
	}

	proxySettings, err := h.proxySettings(p)
	if err != nil {
		return nil, err
	}

	cred := &Credential{Username: h.User}
	passwordPrompt := fmt.Sprintf("%s@%s's password: ", h.User, h.Address)

	source := h.keySource()
	if source == nil {
		h.Log().Debug("no private key configured, using password authentication")
		if cred.Secret, err = p.Password(passwordPrompt); err != nil {
			return nil, fmt.Errorf("password: %w", err)
		}
		return NewPasswordConnectionInfo(h.Endpoint, cred, p.Challenge(), proxySettings, opts...)
	}

	if h.CombinedAuth {
		if cred.Secret, err = p.Password(passwordPrompt); err != nil {
			return nil, fmt.Errorf("password: %w", err)
		}
	}

	key := KeyMaterial{
		Source: source,
		PassphraseCallback: func() (*Secret, error) {
			return p.Password(fmt.Sprintf("Enter passphrase for key %s: ", source))
		},
	}

	return NewKeyConnectionInfo(h.Endpoint, key, cred, proxySettings, h.CombinedAuth, opts...)
}
