// Package auth authenticates dPoW packets and produces authenticated ones.
//
// A packet is accepted when its header hash matches the payload and its
// compact signature verifies under recovery id 0. Neither check establishes
// who sent the packet: sender identity is the notary index carried inside the
// message.
//
// Producers rate limit themselves by grinding the header nonce until the
// packet hash starts with a zero byte, then sign the hash. Seal keeps grinding
// past nonces whose signature would need recovery id 1, so every sealed
// packet verifies on the receiving side.
package auth
