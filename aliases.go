package conninfo

import (
	"github.com/k0sproject/conninfo/auth"
	"github.com/k0sproject/conninfo/protocol"
	"github.com/k0sproject/conninfo/proxy"
	"github.com/k0sproject/conninfo/secret"
)

// Some of the constructors, errors and types from subpackages are aliased here to make it
// easier to consume them without importing more packages.

// ErrValidationFailed is returned when a validation check fails.
var ErrValidationFailed = protocol.ErrValidationFailed

// Endpoint is a type alias for protocol.Endpoint.
type Endpoint = protocol.Endpoint

// Credential is a type alias for secret.Credential.
type Credential = secret.Credential

// Secret is a type alias for secret.Secret.
type Secret = secret.Secret

// ProxySettings is a type alias for proxy.Settings.
type ProxySettings = proxy.Settings

// AuthMethod is a type alias for auth.Method.
type AuthMethod = auth.Method

// NewEndpoint returns an endpoint for address and port.
func NewEndpoint(address string, port int) Endpoint {
	return protocol.NewEndpoint(address, port)
}

// NewCredential returns a credential with the password held as a Secret.
func NewCredential(username, password string) *Credential {
	return secret.NewCredential(username, password)
}
