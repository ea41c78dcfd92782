package protocol

import (
	"net"
	"strconv"
)

// Endpoint represents a network endpoint.
type Endpoint struct {
	Address string `yaml:"address" validate:"required,hostname_rfc1123|ip"`
	Port    int    `yaml:"port" default:"22" validate:"gt=0,lte=65535"`
}

// NewEndpoint returns an endpoint for address and port.
func NewEndpoint(address string, port int) Endpoint {
	return Endpoint{Address: address, Port: port}
}

// Addr returns the endpoint in host:port form.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Address, strconv.Itoa(e.Port))
}

// String returns the endpoint in host:port form.
func (e Endpoint) String() string {
	return e.Addr()
}

// Validate the endpoint.
func (e Endpoint) Validate() error {
	if e.Address == "" {
		return ErrValidationFailed.Wrapf("address is required")
	}

	if e.Port <= 0 || e.Port > 65535 {
		return ErrValidationFailed.Wrapf("port must be between 1 and 65535, got %d", e.Port)
	}

	return nil
}
