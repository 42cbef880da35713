package auth

import "errors"

var (
	// ErrHashMismatch is returned when the packet hash does not match the
	// nonce, declared length and payload.
	ErrHashMismatch = errors.New("packet hash mismatch")

	// ErrSignatureInvalid is returned when the header signature does not
	// recover to a key that verifies it.
	ErrSignatureInvalid = errors.New("invalid packet signature")

	// ErrGrindExhausted is returned when no nonce in the search space yields
	// a qualifying packet hash.
	ErrGrindExhausted = errors.New("nonce search space exhausted")
)
