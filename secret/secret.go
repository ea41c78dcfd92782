// Package secret holds sensitive strings such as passwords and key
// passphrases in encrypted memory. The plaintext is only available inside
// the callback given to [Secret.Reveal].
package secret

import (
	"crypto/subtle"
	"fmt"

	"github.com/awnumar/memguard"
)

// Mask is what a Secret prints as.
const Mask = "[REDACTED]"

// Secret is an opaque handle to sensitive material. The zero value and a
// nil *Secret are both empty secrets.
type Secret struct {
	enclave *memguard.Enclave
}

// New returns a Secret holding s.
func New(s string) *Secret {
	return FromBytes([]byte(s))
}

// FromBytes returns a Secret holding a copy of b. The contents of b are
// wiped.
func FromBytes(b []byte) *Secret {
	if len(b) == 0 {
		return &Secret{}
	}
	// NewEnclave wipes b
	return &Secret{enclave: memguard.NewEnclave(b)}
}

// IsEmpty returns true when the secret holds no data.
func (s *Secret) IsEmpty() bool {
	return s == nil || s.enclave == nil || s.enclave.Size() == 0
}

// Reveal decrypts the secret into a locked buffer and passes the plaintext
// to fn. The buffer is destroyed when fn returns, so fn must not retain
// the slice.
func (s *Secret) Reveal(fn func(plaintext []byte) error) error {
	if s.IsEmpty() {
		return fn(nil)
	}
	buf, err := s.enclave.Open()
	if err != nil {
		return fmt.Errorf("open secret: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// String returns the mask, never the secret.
func (s *Secret) String() string {
	return Mask
}

// GoString returns the mask, never the secret.
func (s *Secret) GoString() string {
	return Mask
}

// Equal reports whether both secrets hold the same plaintext. An error is
// returned when either enclave can not be opened.
func (s *Secret) Equal(other *Secret) (bool, error) {
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() && other.IsEmpty(), nil
	}
	var equal bool
	err := s.Reveal(func(a []byte) error {
		return other.Reveal(func(b []byte) error {
			equal = subtle.ConstantTimeCompare(a, b) == 1
			return nil
		})
	})
	if err != nil {
		return false, err
	}
	return equal, nil
}

// Destroy drops the enclave, the secret is empty afterwards. The plaintext
// only ever existed in locked buffers that were wiped after Reveal. What
// remains on the heap is ciphertext, unreadable once memguard.Purge wipes
// the session key.
func (s *Secret) Destroy() {
	if s != nil {
		s.enclave = nil
	}
}
