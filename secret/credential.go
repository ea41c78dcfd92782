package secret

import "fmt"

// Credential is a username and an optional secret.
type Credential struct {
	Username string
	Secret   *Secret
}

// NewCredential returns a credential with the password stored as a Secret.
func NewCredential(username, password string) *Credential {
	return &Credential{Username: username, Secret: New(password)}
}

// HasSecret returns true when a secret is present. An empty password is
// still a present secret.
func (c *Credential) HasSecret() bool {
	return c != nil && c.Secret != nil
}

// String returns the username with the secret masked.
func (c *Credential) String() string {
	if c == nil {
		return "<nil>"
	}
	if c.Secret == nil {
		return c.Username
	}
	return fmt.Sprintf("%s:%s", c.Username, Mask)
}
