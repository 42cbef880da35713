package store

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// Notary is a roster slot and the last time a packet from it was accepted.
type Notary struct {
	ID       int
	Name     string
	LastSeen int64
}

// IPLogEntry records that a notary reported itself reachable at Address.
type IPLogEntry struct {
	NotaryID  int
	Address   string
	FirstSeen int64
	LastSeen  int64
}

// KnownIP is an address of the global gossip pool. IDs are assigned by the
// store, increase with insertion order and start at 1.
type KnownIP struct {
	ID      uint64
	Address string
}

// NotaryKnownIP records that a notary gossiped the KnownIP with id IPID.
type NotaryKnownIP struct {
	NotaryID  int
	IPID      uint64
	FirstSeen int64
	LastSeen  int64
}

// Marshal - json encoding of Notary
func (n *Notary) Marshal() ([]byte, error) {
	return marshal(n)
}

// Unmarshal ...
func (n *Notary) Unmarshal(data []byte) error {
	return unmarshal(data, n)
}

// Marshal - json encoding of IPLogEntry
func (e *IPLogEntry) Marshal() ([]byte, error) {
	return marshal(e)
}

// Unmarshal ...
func (e *IPLogEntry) Unmarshal(data []byte) error {
	return unmarshal(data, e)
}

// Marshal - json encoding of KnownIP
func (k *KnownIP) Marshal() ([]byte, error) {
	return marshal(k)
}

// Unmarshal ...
func (k *KnownIP) Unmarshal(data []byte) error {
	return unmarshal(data, k)
}

// Marshal - json encoding of NotaryKnownIP
func (a *NotaryKnownIP) Marshal() ([]byte, error) {
	return marshal(a)
}

// Unmarshal ...
func (a *NotaryKnownIP) Unmarshal(data []byte) error {
	return unmarshal(data, a)
}

func marshal(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func unmarshal(data []byte, v interface{}) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(v)
}
