// Package keys implements the secp256k1 key handling of a relay node.
//
// Every dPoW packet header carries a 64-byte compact signature of its packet
// hash. The recovery id that would normally prefix a compact signature is not
// transmitted: by protocol convention verifiers always recover with id 0.
// SignCompact reports the recovery id it actually produced so that producers
// can retry until they emit a signature that verifies under that convention.
package keys
