package keys

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrKeyExists is returned by WriteKey when the key file is already present.
var ErrKeyExists = errors.New("key file already exists")

// nonUserPerm masks the group and other permission bits (000111111).
const nonUserPerm os.FileMode = (1 << 6) - 1

// SimpleKeyfile stores a notary's secp256k1 key as the hex dump of its D
// value, optionally 0x-prefixed. The file must be readable by its owner only.
type SimpleKeyfile struct {
	l       sync.Mutex
	keyfile string
}

// NewSimpleKeyfile ...
func NewSimpleKeyfile(keyfile string) *SimpleKeyfile {
	return &SimpleKeyfile{
		keyfile: keyfile,
	}
}

// Path returns the location of the key file.
func (k *SimpleKeyfile) Path() string {
	return k.keyfile
}

// CheckFileInfo verifies that the file exists and grants no permissions to
// groups or others.
func (k *SimpleKeyfile) CheckFileInfo() error {
	info, err := os.Stat(k.keyfile)
	if err != nil {
		return err
	}

	if perm := info.Mode().Perm(); perm&nonUserPerm != 0 {
		return fmt.Errorf("%s: permissions %o should exclude 'groups' and 'others' (chmod 600)", k.keyfile, perm)
	}

	return nil
}

// ReadKey loads and validates the key. Decoding and range errors name the
// file they come from.
func (k *SimpleKeyfile) ReadKey() (*ecdsa.PrivateKey, error) {
	k.l.Lock()
	defer k.l.Unlock()

	if err := k.CheckFileInfo(); err != nil {
		return nil, err
	}

	buf, err := os.ReadFile(k.keyfile)
	if err != nil {
		return nil, err
	}

	s := strings.TrimPrefix(strings.TrimSpace(string(buf)), "0x")

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: not a hex key: %w", k.keyfile, err)
	}

	key, err := ParsePrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k.keyfile, err)
	}

	return key, nil
}

// WriteKey creates the key file with owner-only permissions. An existing file
// is never overwritten; ErrKeyExists is returned instead.
func (k *SimpleKeyfile) WriteKey(key *ecdsa.PrivateKey) error {
	k.l.Lock()
	defer k.l.Unlock()

	if err := os.MkdirAll(filepath.Dir(k.keyfile), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(k.keyfile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", k.keyfile, ErrKeyExists)
		}
		return err
	}

	if _, err := f.WriteString(PrivateKeyHex(key)); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
