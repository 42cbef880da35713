package auth

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/dpowrelay/relay/src/crypto"
	"github.com/dpowrelay/relay/src/crypto/keys"
	"github.com/dpowrelay/relay/src/wire"
)

// recoveryID is the recovery id every verifier assumes.
const recoveryID = 0

// VerifyPacketHash checks that the header hash binds its nonce, its declared
// length and the payload, and that the declared length is the payload length.
func VerifyPacketHash(h *wire.PacketHeader, payload []byte) error {
	if int(h.PacketLen) != len(payload) {
		return fmt.Errorf("%w: declared %d bytes, got %d", ErrHashMismatch, h.PacketLen, len(payload))
	}

	if crypto.PacketHash(h.Nonce, h.PacketLen, payload) != h.PacketHash {
		return ErrHashMismatch
	}

	return nil
}

// VerifySignature recovers a public key from the header signature with
// recovery id 0 and verifies the signature against it. The recovered key is
// returned for logging only.
func VerifySignature(h *wire.PacketHeader) (*ecdsa.PublicKey, error) {
	pub, err := keys.RecoverCompact(h.Sig, recoveryID, h.PacketHash[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	if !keys.Verify(pub, h.PacketHash[:], h.Sig) {
		return nil, ErrSignatureInvalid
	}

	return pub, nil
}

// Authenticate runs the hash check and then the signature check.
func Authenticate(h *wire.PacketHeader, payload []byte) (*ecdsa.PublicKey, error) {
	if err := VerifyPacketHash(h, payload); err != nil {
		return nil, err
	}
	return VerifySignature(h)
}

// ProduceSignature signs a packet hash. The returned recovery id is the one
// the signature actually needs; only id 0 is accepted by verifiers.
func ProduceSignature(packetHash [32]byte, key *ecdsa.PrivateKey) ([keys.CompactSigSize]byte, byte, error) {
	return keys.SignCompact(key, packetHash[:])
}
