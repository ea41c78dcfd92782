package conninfo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/k0sproject/conninfo/log"
	"github.com/k0sproject/conninfo/secret"
	"github.com/mitchellh/go-homedir"
	ssh "golang.org/x/crypto/ssh"
)

// KeySource provides the raw bytes of a private key.
type KeySource interface {
	fmt.Stringer
	// ReadKey returns the key bytes. The caller wipes them after use.
	ReadKey() ([]byte, error)
}

type keyFile struct {
	path string
}

// KeyFile returns a KeySource that reads the private key from a file. The
// path may start with ~ and is resolved to an absolute path when read.
func KeyFile(path string) KeySource {
	return keyFile{path: path}
}

func (k keyFile) String() string {
	return k.path
}

func (k keyFile) ReadKey() ([]byte, error) {
	expanded, err := homedir.Expand(k.path)
	if err != nil {
		// ~user paths can not be expanded, there is no such file to read
		return nil, ErrNotFound.Wrapf("file %s not found: %w", k.path, err)
	}
	path, err := filepath.Abs(expanded)
	if err != nil {
		return nil, fmt.Errorf("resolve key path %s: %w", k.path, err)
	}

	stat, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, ErrNotFound.Wrapf("file %s not found", path)
	case err != nil:
		return nil, fmt.Errorf("stat key file %s: %w", path, err)
	case !stat.Mode().IsRegular():
		return nil, ErrNotFound.Wrapf("file %s not found (not a regular file)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open key file %s: %w", path, err)
	}
	defer f.Close()

	log.Trace(context.Background(), "reading private key", log.FileAttr(path))
	data, err := io.ReadAll(f)
	if err != nil {
		clear(data)
		return nil, fmt.Errorf("read key file %s: %w", path, err)
	}
	return data, nil
}

type keyLines []string

// KeyLines returns a KeySource for key content given as lines of text.
// The lines are joined with "\n" and nothing else is normalized.
func KeyLines(lines []string) KeySource {
	return keyLines(append([]string(nil), lines...))
}

func (k keyLines) String() string {
	return "key content (" + strconv.Itoa(len(k)) + " lines)"
}

func (k keyLines) ReadKey() ([]byte, error) {
	return []byte(strings.Join(k, "\n")), nil
}

// PassphraseCallback is called when a passphrase is needed to decrypt a
// private key and none was given.
type PassphraseCallback func() (*secret.Secret, error)

// KeyMaterial is a private key source and the optional means to decrypt it.
type KeyMaterial struct {
	Source KeySource
	// Passphrase decrypts an encrypted key. It is ignored for unencrypted keys.
	Passphrase *secret.Secret
	// PassphraseCallback is used for encrypted keys when Passphrase is nil.
	PassphraseCallback PassphraseCallback
}

// Signer reads and parses the private key. The raw key bytes are wiped
// before returning.
func (k KeyMaterial) Signer() (ssh.Signer, error) {
	if k.Source == nil {
		return nil, ErrValidationFailed.Wrapf("no private key source given")
	}

	key, err := k.Source.ReadKey()
	if err != nil {
		return nil, err
	}
	defer clear(key)

	signer, err := ssh.ParsePrivateKey(key)
	if err == nil {
		if k.Passphrase != nil {
			log.Trace(context.Background(), "passphrase given for an unencrypted key, ignoring it", log.KeyFile, k.Source.String())
		}
		return signer, nil
	}

	var ppErr *ssh.PassphraseMissingError
	if !errors.As(err, &ppErr) {
		return nil, ErrKeyParse.Wrapf("%s: %w", k.Source, err)
	}

	passphrase := k.Passphrase
	if passphrase == nil && k.PassphraseCallback != nil {
		log.Trace(context.Background(), "asking for a passphrase to decrypt key", log.KeyFile, k.Source.String())
		passphrase, err = k.PassphraseCallback()
		if err != nil {
			return nil, ErrKeyParse.Wrapf("%s: get passphrase: %w", k.Source, err)
		}
		// asked for this parse only, not needed afterwards
		defer passphrase.Destroy()
	}
	if passphrase == nil {
		return nil, ErrKeyParse.Wrapf("%s: key is encrypted and no passphrase was given: %w", k.Source, ppErr)
	}

	err = passphrase.Reveal(func(pp []byte) error {
		s, err := ssh.ParsePrivateKeyWithPassphrase(key, pp)
		if err != nil {
			return err //nolint:wrapcheck
		}
		signer = s
		return nil
	})
	if err != nil {
		return nil, ErrKeyParse.Wrapf("%s: decrypt key: %w", k.Source, err)
	}

	return signer, nil
}
