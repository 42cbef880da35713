package auth

import (
	"crypto/ecdsa"
	"fmt"
	"math"

	"github.com/dpowrelay/relay/src/crypto"
	"github.com/dpowrelay/relay/src/wire"
)

const (
	// DefaultMaxNonce bounds the nonce search, exclusive.
	DefaultMaxNonce = 10000

	// DefaultZeroBytes is the number of leading zero bytes a packet hash
	// must have.
	DefaultZeroBytes = 1
)

// Grinder searches the nonce space for a packet hash with ZeroBytes leading
// zero bytes. Nonces are tried in increasing order from 0 to MaxNonce-1, so
// the result is deterministic for a given payload.
type Grinder struct {
	MaxNonce  uint32
	ZeroBytes int
}

// DefaultGrinder returns the Grinder used by the network.
func DefaultGrinder() Grinder {
	return Grinder{
		MaxNonce:  DefaultMaxNonce,
		ZeroBytes: DefaultZeroBytes,
	}
}

// GrindPacketHash grinds payload with the default Grinder.
func GrindPacketHash(payload []byte) (uint32, [32]byte, error) {
	return DefaultGrinder().Grind(payload)
}

// Seal grinds and signs payload with the default Grinder.
func Seal(payload []byte, key *ecdsa.PrivateKey) (*wire.PacketHeader, error) {
	return DefaultGrinder().Seal(payload, key)
}

// Grind returns the first nonce whose packet hash qualifies, with that hash.
func (g Grinder) Grind(payload []byte) (uint32, [32]byte, error) {
	return g.grindFrom(payload, 0)
}

func (g Grinder) grindFrom(payload []byte, start uint32) (uint32, [32]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return 0, [32]byte{}, fmt.Errorf("payload too large: %d bytes", len(payload))
	}
	packetLen := uint32(len(payload))

	for nonce := start; nonce < g.MaxNonce; nonce++ {
		hash := crypto.PacketHash(nonce, packetLen, payload)
		if g.qualifies(hash) {
			return nonce, hash, nil
		}
	}

	return 0, [32]byte{}, ErrGrindExhausted
}

func (g Grinder) qualifies(hash [32]byte) bool {
	for i := 0; i < g.ZeroBytes && i < len(hash); i++ {
		if hash[i] != 0 {
			return false
		}
	}
	return true
}

// Seal produces an authenticated header for payload. Nonces whose signature
// needs recovery id 1 are skipped and the search resumes at the next nonce.
func (g Grinder) Seal(payload []byte, key *ecdsa.PrivateKey) (*wire.PacketHeader, error) {
	var start uint32

	for {
		nonce, hash, err := g.grindFrom(payload, start)
		if err != nil {
			return nil, err
		}

		sig, recid, err := ProduceSignature(hash, key)
		if err != nil {
			return nil, err
		}

		if recid == recoveryID {
			return &wire.PacketHeader{
				Sig:        sig,
				PacketHash: hash,
				Nonce:      nonce,
				PacketLen:  uint32(len(payload)),
			}, nil
		}

		start = nonce + 1
	}
}
