// Package service implements the control endpoint of a relay.
//
// A JSON-RPC 2.0 method posted to the root path switches dial-on-discovery
// on or off:
//
//  {"jsonrpc":"2.0","method":"set_gossip","params":{"value":false},"id":1}
//
// Two read-only endpoints expose the node's counters (/stats) and the notary
// roster with last-seen times (/notaries).
package service
