package keys

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

/*
Notaries sign packets with secp256k1 keys, the curve used by the Komodo and
Bitcoin chains they notarize. We use btcsuite's golang implementation.
*/

// Parameters of the secp256k1 curve. They are used to check that private keys
// are in range and that signatures are in canonical low-S form.
var (
	secp256k1N     = btcec.S256().N
	secp256k1halfN = new(big.Int).Rsh(secp256k1N, 1)
)

// Curve returns btcsuite's secp256k1 curve.
func Curve() *btcec.KoblitzCurve {
	return btcec.S256()
}
