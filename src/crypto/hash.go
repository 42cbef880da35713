package crypto

import (
	"crypto/sha256"
	"encoding/binary"
)

// SHA256 returns the SHA256 hash of the data.
func SHA256(data []byte) []byte {
	hasher := sha256.New()
	hasher.Write(data)
	return hasher.Sum(nil)
}

// PacketHash returns the integrity digest of a packet: the SHA256 hash of the
// little-endian nonce, the little-endian declared length and the payload.
func PacketHash(nonce uint32, packetLen uint32, payload []byte) [32]byte {
	var prefix [8]byte
	binary.LittleEndian.PutUint32(prefix[:4], nonce)
	binary.LittleEndian.PutUint32(prefix[4:], packetLen)

	var hash [32]byte
	hasher := sha256.New()
	hasher.Write(prefix[:])
	hasher.Write(payload)
	hasher.Sum(hash[:0])
	return hash
}
