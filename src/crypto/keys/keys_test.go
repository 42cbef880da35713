package keys

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dpowrelay/relay/src/crypto"
)

func TestSimpleKeyfile(t *testing.T) {
	dir := t.TempDir()

	simpleKeyfile := NewSimpleKeyfile(filepath.Join(dir, "priv_key"))

	// Try a read, should get nothing
	key, err := simpleKeyfile.ReadKey()
	if err == nil {
		t.Fatalf("ReadKey should generate an error")
	}
	if key != nil {
		t.Fatalf("key is not nil")
	}

	key, _ = GenerateECDSAKey()

	if err := simpleKeyfile.WriteKey(key); err != nil {
		t.Fatalf("err: %v", err)
	}

	nKey, err := simpleKeyfile.ReadKey()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if nKey.D.Cmp(key.D) != 0 || nKey.X.Cmp(key.X) != 0 || nKey.Y.Cmp(key.Y) != 0 {
		t.Fatalf("Keys do not match")
	}
}

func TestSimpleKeyfileNoOverwrite(t *testing.T) {
	keyfile := NewSimpleKeyfile(filepath.Join(t.TempDir(), "priv_key"))

	first, _ := GenerateECDSAKey()
	if err := keyfile.WriteKey(first); err != nil {
		t.Fatal(err)
	}

	second, _ := GenerateECDSAKey()
	if err := keyfile.WriteKey(second); !errors.Is(err, ErrKeyExists) {
		t.Fatalf("expected ErrKeyExists, got %v", err)
	}

	read, err := keyfile.ReadKey()
	if err != nil {
		t.Fatal(err)
	}
	if read.D.Cmp(first.D) != 0 {
		t.Fatalf("the first key should survive")
	}
}

func TestSimpleKeyfileFormats(t *testing.T) {
	dir := t.TempDir()
	key, _ := GenerateECDSAKey()

	prefixed := filepath.Join(dir, "prefixed")
	if err := os.WriteFile(prefixed, []byte("0x"+PrivateKeyHex(key)+"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	read, err := NewSimpleKeyfile(prefixed).ReadKey()
	if err != nil {
		t.Fatal(err)
	}
	if read.D.Cmp(key.D) != 0 {
		t.Fatalf("0x-prefixed key should parse")
	}

	bad := filepath.Join(dir, "bad")
	if err := os.WriteFile(bad, []byte("zz"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err = NewSimpleKeyfile(bad).ReadKey()
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Fatalf("decode errors should name the file, got %v", err)
	}

	short := filepath.Join(dir, "short")
	if err := os.WriteFile(short, []byte("abcd"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSimpleKeyfile(short).ReadKey(); err == nil {
		t.Fatalf("a short key should be rejected")
	}
}

func TestFilePermissions(t *testing.T) {
	dir := t.TempDir()

	key, _ := GenerateECDSAKey()
	rawKey := PrivateKeyHex(key)

	badKeyPath := filepath.Join(dir, "priv_key_bad")

	shouldErr := []os.FileMode{
		0777, 0766, 0744,
		0677, 0666, 0644,
		0477, 0466, 0444,
	}

	for _, fm := range shouldErr {
		os.WriteFile(badKeyPath, []byte(rawKey), fm)
		os.Chmod(badKeyPath, fm)

		if _, err := NewSimpleKeyfile(badKeyPath).ReadKey(); err == nil {
			t.Fatalf("%o || badKeyFile should return permissions error", fm)
		}
	}

	goodKeyPath := filepath.Join(dir, "priv_key_good")

	shouldNotErr := []os.FileMode{
		0700, 0600, 0500, 0400,
	}

	for _, fm := range shouldNotErr {
		os.WriteFile(goodKeyPath, []byte(rawKey), 0600)
		os.Chmod(goodKeyPath, fm)

		if _, err := NewSimpleKeyfile(goodKeyPath).ReadKey(); err != nil {
			t.Fatalf("%o || goodKeyFile should not return error. Got %v", fm, err)
		}
	}
}

func TestParsePrivateKey(t *testing.T) {
	if _, err := ParsePrivateKey(make([]byte, 31)); err == nil {
		t.Fatalf("short key should be rejected")
	}
	if _, err := ParsePrivateKey(make([]byte, 32)); err == nil {
		t.Fatalf("zero key should be rejected")
	}

	key, _ := GenerateECDSAKey()
	parsed, err := ParsePrivateKey(DumpPrivateKey(key))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(FromPublicKey(&parsed.PublicKey), FromPublicKey(&key.PublicKey)) {
		t.Fatalf("parsed key has a different public key")
	}
}

func TestPublicKeyEncoding(t *testing.T) {
	key, _ := GenerateECDSAKey()

	b := FromPublicKey(&key.PublicKey)
	if len(b) != 33 {
		t.Fatalf("compressed key should be 33 bytes, not %d", len(b))
	}

	pub, err := ToPublicKey(b)
	if err != nil {
		t.Fatal(err)
	}
	if pub.X.Cmp(key.X) != 0 || pub.Y.Cmp(key.Y) != 0 {
		t.Fatalf("public keys do not match")
	}
	if len(PublicKeyHex(pub)) != 66 {
		t.Fatalf("unexpected hex %s", PublicKeyHex(pub))
	}
}

func TestSignCompactRecover(t *testing.T) {
	key, _ := GenerateECDSAKey()
	hash := crypto.SHA256([]byte("J'aime mieux forger mon ame que la meubler"))

	sig, recid, err := SignCompact(key, hash)
	if err != nil {
		t.Fatal(err)
	}
	if recid > 1 {
		t.Fatalf("unexpected recovery id %d", recid)
	}

	pub, err := RecoverCompact(sig, recid, hash)
	if err != nil {
		t.Fatal(err)
	}
	if pub.X.Cmp(key.X) != 0 || pub.Y.Cmp(key.Y) != 0 {
		t.Fatalf("recovered key does not match signer")
	}

	if !Verify(pub, hash, sig) {
		t.Fatalf("signature should verify")
	}

	_, s := SplitSignature(sig)
	if s.Cmp(secp256k1halfN) > 0 {
		t.Fatalf("signature should be low-S")
	}
}

func TestVerifyRejectsHighS(t *testing.T) {
	key, _ := GenerateECDSAKey()
	hash := crypto.SHA256([]byte("high s"))

	sig, _, err := SignCompact(key, hash)
	if err != nil {
		t.Fatal(err)
	}

	_, s := SplitSignature(sig)
	high := s.Sub(secp256k1N, s)
	high.FillBytes(sig[32:])

	if Verify(&key.PublicKey, hash, sig) {
		t.Fatalf("high-S signature should be rejected")
	}

	if Verify(&key.PublicKey, hash, [CompactSigSize]byte{}) {
		t.Fatalf("zero signature should be rejected")
	}
}
