package conninfo

import (
	"github.com/k0sproject/conninfo/errstring"
)

var (
	ErrNotFound          = errstring.New("not found")          // ErrNotFound is returned when a key file does not exist
	ErrKeyParse          = errstring.New("key parse failed")   // ErrKeyParse is returned when private key data can't be parsed or decrypted
	ErrInvalidCredential = errstring.New("invalid credential") // ErrInvalidCredential is returned when a required credential field is missing
)
