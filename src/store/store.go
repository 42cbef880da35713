package store

// Store is the durable bookkeeping of a relay: the notary roster with its
// last-seen times, the addresses each notary reported for itself, the global
// pool of gossiped addresses, and which notary gossiped which address.
//
// Every method is an independent write or read. Missing rows are reported
// with a common.StoreErr of type KeyNotFound.
type Store interface {
	// SeedNotary inserts n unless a notary with the same id exists. It
	// reports whether a row was inserted.
	SeedNotary(n *Notary) (bool, error)
	// GetNotary returns a notary by id.
	GetNotary(id int) (*Notary, error)
	// SetNotaryLastSeen updates the last-seen time of an existing notary.
	SetNotaryLastSeen(id int, ts int64) error
	// Notaries returns all notaries ordered by id.
	Notaries() ([]*Notary, error)
	// GetIPLog returns the entry of a notary's self-reported address.
	GetIPLog(notaryID int, address string) (*IPLogEntry, error)
	// SetIPLog inserts or replaces an ip-log entry.
	SetIPLog(e *IPLogEntry) error
	// IPLogs returns the ip-log entries of a notary ordered by address.
	IPLogs(notaryID int) ([]*IPLogEntry, error)
	// AddKnownIP inserts an address into the known pool unless present. It
	// returns the pool row and whether it was inserted by this call.
	AddKnownIP(address string) (*KnownIP, bool, error)
	// KnownIPs returns the known pool in insertion order.
	KnownIPs() ([]*KnownIP, error)
	// GetNotaryKnownIP returns the association of a notary and a pool row.
	GetNotaryKnownIP(notaryID int, ipID uint64) (*NotaryKnownIP, error)
	// SetNotaryKnownIP inserts or replaces an association.
	SetNotaryKnownIP(a *NotaryKnownIP) error
	// Close closes the underlying database.
	Close() error
	// StorePath returns the filepath of the underlying database.
	StorePath() string
}
