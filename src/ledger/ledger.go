// Package ledger records which notary was seen at which address, and feeds
// the addresses learned from gossip to peer discovery.
package ledger

import (
	"fmt"

	cm "github.com/dpowrelay/relay/src/common"
	"github.com/dpowrelay/relay/src/notary"
	"github.com/dpowrelay/relay/src/store"
	"github.com/dpowrelay/relay/src/wire"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Ledger implements the upsert semantics of the ip bookkeeping on top of a
// Store. First-seen times never change once written and last-seen times
// never move backwards. The zero address is never stored.
type Ledger struct {
	store  store.Store
	logger *logrus.Entry
}

// NewLedger ...
func NewLedger(s store.Store, logger *logrus.Entry) *Ledger {
	return &Ledger{
		store:  s,
		logger: logger,
	}
}

// RecordOwnIP records that notary id reported itself reachable at address.
func (l *Ledger) RecordOwnIP(id int, address wire.Address, ts int64) error {
	if err := notary.CheckSender(id); err != nil {
		return err
	}
	if address.IsZero() {
		return nil
	}

	addr := address.String()

	entry, err := l.store.GetIPLog(id, addr)
	switch {
	case err == nil:
		if ts <= entry.LastSeen {
			return nil
		}
		entry.LastSeen = ts
	case cm.IsStore(err, cm.KeyNotFound):
		entry = &store.IPLogEntry{
			NotaryID:  id,
			Address:   addr,
			FirstSeen: ts,
			LastSeen:  ts,
		}
		l.logger.WithFields(logrus.Fields{
			"notary":  id,
			"address": addr,
		}).Debug("New own address")
	default:
		return err
	}

	return l.store.SetIPLog(entry)
}

// RecordKnownIPs records the addresses gossiped by notary id and returns the
// ones that entered the global pool during this call, in list order. Zero
// addresses and duplicates within the list are skipped. A failure on one
// address does not stop the others; failures are combined in the returned
// error alongside the addresses that entered the pool.
func (l *Ledger) RecordKnownIPs(id int, addresses []wire.Address, ts int64) ([]wire.Address, error) {
	if err := notary.CheckSender(id); err != nil {
		return nil, err
	}

	var (
		fresh []wire.Address
		errs  error
	)

	seen := make(map[wire.Address]struct{}, len(addresses))

	for _, a := range addresses {
		if a.IsZero() {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}

		// an address that entered the pool is fresh even if its association
		// failed; a retry would no longer see it as new
		inserted, err := l.recordKnownIP(id, a, ts)
		if inserted {
			fresh = append(fresh, a)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", a, err))
		}
	}

	return fresh, errs
}

func (l *Ledger) recordKnownIP(id int, address wire.Address, ts int64) (bool, error) {
	known, inserted, err := l.store.AddKnownIP(address.String())
	if err != nil {
		return false, err
	}

	assoc, err := l.store.GetNotaryKnownIP(id, known.ID)
	switch {
	case err == nil:
		if ts <= assoc.LastSeen {
			return inserted, nil
		}
		assoc.LastSeen = ts
	case cm.IsStore(err, cm.KeyNotFound):
		assoc = &store.NotaryKnownIP{
			NotaryID:  id,
			IPID:      known.ID,
			FirstSeen: ts,
			LastSeen:  ts,
		}
	default:
		return inserted, err
	}

	return inserted, l.store.SetNotaryKnownIP(assoc)
}

// KnownAddresses returns the global pool in insertion order. Rows that do not
// parse as IPv4 addresses are logged and skipped.
func (l *Ledger) KnownAddresses() ([]wire.Address, error) {
	known, err := l.store.KnownIPs()
	if err != nil {
		return nil, err
	}

	res := make([]wire.Address, 0, len(known))
	for _, k := range known {
		a, err := wire.ParseAddress(k.Address)
		if err != nil {
			l.logger.WithError(err).WithField("id", k.ID).Warn("Skipping known ip")
			continue
		}
		res = append(res, a)
	}

	return res, nil
}

// OwnIPs returns the addresses notary id reported for itself.
func (l *Ledger) OwnIPs(id int) ([]*store.IPLogEntry, error) {
	if err := notary.CheckSender(id); err != nil {
		return nil, err
	}
	return l.store.IPLogs(id)
}
