package keys

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

// CompactSigSize is the size of a compact signature without its recovery
// byte.
const CompactSigSize = 64

// compactHeader is the base of the recovery byte btcec prepends to compact
// signatures for uncompressed keys.
const compactHeader = 27

// SignCompact signs hash with priv and returns the 64-byte r||s signature
// together with the recovery id of the signature. Signatures are
// deterministic (RFC6979) and always in low-S form.
func SignCompact(priv *ecdsa.PrivateKey, hash []byte) (sig [CompactSigSize]byte, recid byte, err error) {
	raw, err := btcec.SignCompact(Curve(), (*btcec.PrivateKey)(priv), hash, false)
	if err != nil {
		return sig, 0, err
	}
	if len(raw) != CompactSigSize+1 {
		return sig, 0, fmt.Errorf("unexpected compact signature length %d", len(raw))
	}

	copy(sig[:], raw[1:])

	return sig, raw[0] - compactHeader, nil
}

// RecoverCompact recovers the public key that produced sig over hash,
// assuming the given recovery id.
func RecoverCompact(sig [CompactSigSize]byte, recid byte, hash []byte) (*ecdsa.PublicKey, error) {
	if recid > 3 {
		return nil, fmt.Errorf("invalid recovery id %d", recid)
	}

	raw := make([]byte, 0, CompactSigSize+1)
	raw = append(raw, compactHeader+recid)
	raw = append(raw, sig[:]...)

	pub, _, err := btcec.RecoverCompact(Curve(), raw, hash)
	if err != nil {
		return nil, err
	}

	return pub.ToECDSA(), nil
}

// Verify checks the plain r||s signature against pub. Zero values and high-S
// signatures are rejected.
func Verify(pub *ecdsa.PublicKey, hash []byte, sig [CompactSigSize]byte) bool {
	r, s := SplitSignature(sig)

	if r.Sign() == 0 || s.Sign() == 0 {
		return false
	}
	if s.Cmp(secp256k1halfN) > 0 {
		return false
	}

	signature := &btcec.Signature{R: r, S: s}

	return signature.Verify(hash, (*btcec.PublicKey)(pub))
}

// SplitSignature returns the r and s values of a compact signature.
func SplitSignature(sig [CompactSigSize]byte) (r, s *big.Int) {
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:])
	return r, s
}
