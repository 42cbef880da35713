package crypto

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

func TestPacketHashPrefix(t *testing.T) {
	payload := []byte("notarize")

	var buf []byte
	buf = append(buf, 0x10, 0x27, 0, 0) // 10000
	buf = append(buf, byte(len(payload)), 0, 0, 0)
	buf = append(buf, payload...)

	want := sha256.Sum256(buf)
	got := PacketHash(10000, uint32(len(payload)), payload)

	if got != want {
		t.Fatalf("packet hash should be sha256(LE32(nonce)||LE32(len)||payload)")
	}

	if !bytes.Equal(SHA256(buf), want[:]) {
		t.Fatalf("SHA256 helper disagrees with sha256.Sum256")
	}
}

func TestPacketHashBindsLength(t *testing.T) {
	payload := []byte{1, 2, 3}
	if PacketHash(0, 3, payload) == PacketHash(0, 4, payload) {
		t.Fatalf("declared length should change the hash")
	}
	if PacketHash(0, 3, payload) == PacketHash(1, 3, payload) {
		t.Fatalf("nonce should change the hash")
	}
}
