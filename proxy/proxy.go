// Package proxy resolves the forwarding proxy used to reach an SSH host.
package proxy

import (
	"net/url"

	"github.com/k0sproject/conninfo/protocol"
	"github.com/k0sproject/conninfo/secret"
)

// Kind is the transport used to talk to the proxy.
type Kind int

const (
	// KindHTTP tunnels through an HTTP CONNECT proxy.
	KindHTTP Kind = iota
	// KindSOCKS4 tunnels through a SOCKS4 (or SOCKS4a) proxy.
	KindSOCKS4
	// KindSOCKS5 tunnels through a SOCKS5 proxy.
	KindSOCKS5
)

var labels = map[string]Kind{
	"HTTP":   KindHTTP,
	"Socks4": KindSOCKS4,
	"Socks5": KindSOCKS5,
}

// String returns the label Resolve maps to the kind.
func (k Kind) String() string {
	switch k {
	case KindSOCKS4:
		return "Socks4"
	case KindSOCKS5:
		return "Socks5"
	default:
		return "HTTP"
	}
}

// Scheme returns the URL scheme for the kind.
func (k Kind) Scheme() string {
	switch k {
	case KindSOCKS4:
		return "socks4"
	case KindSOCKS5:
		return "socks5"
	default:
		return "http"
	}
}

// Resolve maps a proxy type label to a Kind. The labels are case sensitive.
// Anything that is not exactly "HTTP", "Socks4" or "Socks5" resolves to
// KindHTTP, use IsKnown to detect that.
func Resolve(label string) Kind {
	if k, ok := labels[label]; ok {
		return k
	}
	return KindHTTP
}

// IsKnown returns true if the label is one of the recognized proxy types.
func IsKnown(label string) bool {
	_, ok := labels[label]
	return ok
}

// Settings is the proxy input as given by the caller.
type Settings struct {
	// Type is the proxy type label, see Resolve.
	Type string
	// Address of the proxy. An empty address means no proxy.
	Address string
	Port    int
	// Credential for the proxy leg, nil for an anonymous proxy.
	Credential *secret.Credential
}

// Resolve returns the proxy configuration for the settings or nil when no
// proxy address is set.
func (s *Settings) Resolve() (*Config, error) {
	if s == nil || s.Address == "" {
		return nil, nil //nolint:nilnil
	}

	cfg := &Config{
		Kind:       Resolve(s.Type),
		Endpoint:   protocol.NewEndpoint(s.Address, s.Port),
		Credential: s.Credential,
	}
	if err := cfg.Endpoint.Validate(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return cfg, nil
}

// Config is a resolved proxy configuration.
type Config struct {
	Kind Kind
	protocol.Endpoint
	// Credential is nil for an anonymous proxy.
	Credential *secret.Credential
}

// URL returns the proxy as an URL. The password is never included.
func (c *Config) URL() *url.URL {
	u := &url.URL{Scheme: c.Kind.Scheme(), Host: c.Addr()}
	if c.Credential != nil && c.Credential.Username != "" {
		u.User = url.User(c.Credential.Username)
	}
	return u
}

// String returns the proxy URL.
func (c *Config) String() string {
	return c.URL().String()
}
