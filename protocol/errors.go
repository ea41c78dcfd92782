// Package protocol contains the network endpoint type and the errors shared
// by the connection info packages.
package protocol

import "github.com/k0sproject/conninfo/errstring"

// ErrValidationFailed is returned when caller input fails validation.
var ErrValidationFailed = errstring.New("validation failed")
