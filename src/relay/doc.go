// Package relay wires the parts of a dPoW notary relay together.
//
// A Relay is created from a config.Config. Init validates the configuration,
// opens the store (badger or in-memory) and seeds the notary roster. It then
// creates the ledger, the bus transport, the node and the optional HTTP
// service. Run serves the service in the background and blocks on the node
// until it shuts down, after which the store is closed.
//
//  r := relay.NewRelay(conf)
//  if err := r.Init(); err != nil {
//  	return err
//  }
//  r.Run()
//
// The package also implements the producer side of the protocol:
// Announcement builds, grinds and signs a gossip packet advertising a
// notary's address.
package relay
