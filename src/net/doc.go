// Package net implements the transports relays gossip on.
//
// dPoW notaries are connected by a nanomsg BUS: every message a notary sends
// reaches every peer it is connected to, and receivers cannot tell who sent a
// message other than by its content. The Transport interface captures this
// model. There are two implementations:
//
// - Bus: a mangos BUS socket speaking the nanomsg wire protocol over TCP
//
// - Inmem: in-memory transport used only for testing
//
// Endpoints are nanomsg URLs such as tcp://195.201.20.230:13344. Dials are
// asynchronous: the socket keeps trying to connect, and to reconnect, in the
// background.
package net
