// Package conninfo builds the authentication and transport configuration for
// an SSH session: the target, the ordered authentication methods and the
// optional forwarding proxy. Building a ConnectionInfo performs no network
// I/O, a session layer consumes the result to connect.
package conninfo

import (
	"slices"
	"strings"

	"github.com/k0sproject/conninfo/auth"
	"github.com/k0sproject/conninfo/proxy"
	ssh "golang.org/x/crypto/ssh"
	netproxy "golang.org/x/net/proxy"
)

// ConnectionInfo is an immutable description of how to connect and
// authenticate to an SSH host.
type ConnectionInfo struct {
	target  Endpoint
	user    string
	proxy   *proxy.Config
	methods []auth.Method
}

func newConnectionInfo(target Endpoint, user string, proxyConfig *proxy.Config, methods []auth.Method) *ConnectionInfo {
	return &ConnectionInfo{
		target:  target,
		user:    user,
		proxy:   proxyConfig,
		methods: methods,
	}
}

// Target returns the SSH host endpoint.
func (c *ConnectionInfo) Target() Endpoint {
	return c.target
}

// Address returns the SSH host in host:port form.
func (c *ConnectionInfo) Address() string {
	return c.target.Addr()
}

// User returns the username to log in as.
func (c *ConnectionInfo) User() string {
	return c.user
}

// Proxy returns a copy of the proxy configuration or nil for a direct
// connection.
func (c *ConnectionInfo) Proxy() *proxy.Config {
	if c.proxy == nil {
		return nil
	}
	p := *c.proxy
	return &p
}

// AuthMethods returns the authentication methods in the order they are to
// be attempted.
func (c *ConnectionInfo) AuthMethods() []auth.Method {
	return slices.Clone(c.methods)
}

// String returns a printable description without any secrets, for example
// "alice@host1:22 via socks5://proxy1:1080 (password,publickey)".
func (c *ConnectionInfo) String() string {
	var sb strings.Builder
	sb.WriteString(c.user)
	sb.WriteByte('@')
	sb.WriteString(c.Address())
	if c.proxy != nil {
		sb.WriteString(" via ")
		sb.WriteString(c.proxy.String())
	}
	sb.WriteString(" (")
	sb.WriteString(strings.Join(auth.Names(c.methods), ","))
	sb.WriteByte(')')
	return sb.String()
}

// ClientConfig returns an ssh.ClientConfig with the authentication methods
// in order and the given host key callback.
func (c *ConnectionInfo) ClientConfig(hostKeyCallback ssh.HostKeyCallback) *ssh.ClientConfig {
	return &ssh.ClientConfig{
		User:            c.user,
		Auth:            auth.AuthMethods(c.methods),
		HostKeyCallback: hostKeyCallback,
	}
}

// Dialer returns the dialer for reaching the target, routed through the
// proxy when one is configured.
func (c *ConnectionInfo) Dialer() (netproxy.Dialer, error) {
	if c.proxy == nil {
		return netproxy.Direct, nil
	}
	return c.proxy.Dialer(netproxy.Direct) //nolint:wrapcheck
}
