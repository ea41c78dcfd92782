package proxy

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/k0sproject/conninfo/errstring"
	"github.com/wzshiming/httpproxy"
	"github.com/wzshiming/socks4"
	"golang.org/x/net/proxy"
)

// ErrDialFailed is returned when a connection through the proxy can not be
// established, including when the proxy refuses the tunnel.
var ErrDialFailed = errstring.New("proxy dial failed")

func init() {
	proxy.RegisterDialerType("http", newHTTPDialer)
	proxy.RegisterDialerType("socks4", newSOCKS4Dialer)
	proxy.RegisterDialerType("socks4a", newSOCKS4Dialer)
}

// forwardDialer adapts a proxy.Dialer to the context dialer the protocol
// libraries use to reach the proxy.
type forwardDialer struct {
	proxy.Dialer
}

func (f forwardDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := f.Dialer.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, network, addr) //nolint:wrapcheck
	}
	return f.Dialer.Dial(network, addr) //nolint:wrapcheck
}

func newHTTPDialer(u *url.URL, forward proxy.Dialer) (proxy.Dialer, error) {
	d, err := httpproxy.NewDialer(u.String())
	if err != nil {
		return nil, fmt.Errorf("http proxy dialer: %w", err)
	}
	d.ProxyDial = forwardDialer{forward}.DialContext
	return d, nil
}

func newSOCKS4Dialer(u *url.URL, forward proxy.Dialer) (proxy.Dialer, error) {
	d, err := socks4.NewDialer(u.String())
	if err != nil {
		return nil, fmt.Errorf("socks4 proxy dialer: %w", err)
	}
	d.ProxyDial = forwardDialer{forward}.DialContext
	return d, nil
}

// dialURL is URL with the password included and the socks4a scheme for
// SOCKS4 so host names are resolved by the proxy.
func (c *Config) dialURL() (*url.URL, error) {
	u := c.URL()
	if c.Kind == KindSOCKS4 {
		u.Scheme = "socks4a"
	}
	if c.Credential == nil || c.Credential.Username == "" || c.Kind == KindSOCKS4 {
		return u, nil
	}
	err := c.Credential.Secret.Reveal(func(pw []byte) error {
		if len(pw) > 0 {
			u.User = url.UserPassword(c.Credential.Username, string(pw))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("proxy credential: %w", err)
	}
	return u, nil
}

// tunnelDialer wraps the protocol dialer with the proxy address in errors.
type tunnelDialer struct {
	proxy   proxy.Dialer
	display string
}

func (d *tunnelDialer) Dial(network, addr string) (net.Conn, error) {
	return d.DialContext(context.Background(), network, addr)
}

func (d *tunnelDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	switch network {
	case "tcp", "tcp4", "tcp6":
	default:
		return nil, ErrDialFailed.Wrapf("%s: unsupported network %s", d.display, network)
	}

	var (
		conn net.Conn
		err  error
	)
	if cd, ok := d.proxy.(proxy.ContextDialer); ok {
		conn, err = cd.DialContext(ctx, network, addr)
	} else {
		conn, err = d.proxy.Dial(network, addr)
	}
	if err != nil {
		return nil, ErrDialFailed.Wrap(fmt.Errorf("%s via %s: %w", addr, d.display, err))
	}
	return conn, nil
}

// Dialer returns a dialer that reaches its destination through the proxy.
// Connections to the proxy itself are made with forward, or proxy.Direct
// when nil. No connection is made until the returned dialer is used.
func (c *Config) Dialer(forward proxy.Dialer) (proxy.Dialer, error) {
	if forward == nil {
		forward = proxy.Direct
	}

	u, err := c.dialURL()
	if err != nil {
		return nil, err
	}

	d, err := proxy.FromURL(u, forward)
	if err != nil {
		return nil, fmt.Errorf("%s dialer: %w", c.Kind.Scheme(), err)
	}

	return &tunnelDialer{proxy: d, display: c.String()}, nil
}
