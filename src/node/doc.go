// Package node implements the connection loop of a relay.
//
// A Node is a small state machine. In the Bootstrapping state it binds the
// local bus endpoint and dials the configured bootstrap peer. When catch-up is
// enabled it then enters the CatchingUp state, where it dials every address
// already present in the known pool, before settling in the Steady state.
//
// Steady
//
// In the Steady state the node reads the transport and feeds the bytes to a
// wire.FrameReader. Every complete frame is authenticated and decoded, and
// its sender index is checked against the roster. Only then does the node
// update the notary's last-seen time and record the addresses found in the
// message. Packets failing any check are dropped and counted without
// touching the store.
//
// Addresses entering the known pool for the first time are handed to the
// Dialer when the gossip Toggle is on. The Dialer skips the zero address and
// the node's own endpoints. It also skips the bootstrap peer and anything it
// dialed before.
//
// Store failures are retried a configurable number of times, then logged and
// skipped. They never stop the loop.
package node
