package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger"
	cm "github.com/dpowrelay/relay/src/common"
	"github.com/sirupsen/logrus"
)

const (
	notaryPrefix    = "notary"
	ipLogPrefix     = "iplog"
	knownAddrPrefix = "kaddr"
	knownIDPrefix   = "kid"
	assocPrefix     = "nkip"

	knownIPSequence  = "seq_kid"
	sequenceBandwith = 64
)

// BadgerStore implements the Store interface with a Badger database. Every
// write is committed in its own transaction.
type BadgerStore struct {
	db   *badger.DB
	seq  *badger.Sequence
	path string
}

// NewBadgerStore opens an existing database or creates a new one if nothing is
// found in path.
func NewBadgerStore(path string, logger *logrus.Entry) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithSyncWrites(false).
		WithTruncate(true)

	if logger != nil {
		sub := logger.WithFields(logrus.Fields{"ns": "badger"})
		opts = opts.WithLogger(sub)
	}

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	seq, err := handle.GetSequence([]byte(knownIPSequence), sequenceBandwith)
	if err != nil {
		handle.Close()
		return nil, err
	}

	store := &BadgerStore{
		db:   handle,
		seq:  seq,
		path: path,
	}
	return store, nil
}

/*******************************************************************************
Keys
*******************************************************************************/

func notaryKey(id int) []byte {
	return []byte(fmt.Sprintf("%s_%03d", notaryPrefix, id))
}

func ipLogNotaryPrefix(notaryID int) []byte {
	return []byte(fmt.Sprintf("%s_%03d_", ipLogPrefix, notaryID))
}

func ipLogKey(notaryID int, address string) []byte {
	return append(ipLogNotaryPrefix(notaryID), address...)
}

func knownAddrKey(address string) []byte {
	return []byte(fmt.Sprintf("%s_%s", knownAddrPrefix, address))
}

func knownIDKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s_%020d", knownIDPrefix, id))
}

func assocKey(notaryID int, ipID uint64) []byte {
	return []byte(fmt.Sprintf("%s_%03d_%020d", assocPrefix, notaryID, ipID))
}

/*******************************************************************************
Store Implementation
*******************************************************************************/

// SeedNotary implements the Store interface.
func (s *BadgerStore) SeedNotary(n *Notary) (bool, error) {
	inserted := false

	err := s.db.Update(func(txn *badger.Txn) error {
		key := notaryKey(n.ID)

		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !isDBKeyNotFound(err) {
			return err
		}

		val, err := n.Marshal()
		if err != nil {
			return err
		}

		inserted = true
		return txn.Set(key, val)
	})

	if err != nil {
		return false, err
	}

	return inserted, nil
}

// GetNotary implements the Store interface.
func (s *BadgerStore) GetNotary(id int) (*Notary, error) {
	data, err := s.dbGet(notaryKey(id))
	if err != nil {
		return nil, mapError(err, "Notary", fmt.Sprint(id))
	}

	n := new(Notary)
	if err := n.Unmarshal(data); err != nil {
		return nil, cm.NewStoreErr("Notary", cm.Corrupt, fmt.Sprint(id))
	}

	return n, nil
}

// SetNotaryLastSeen implements the Store interface.
func (s *BadgerStore) SetNotaryLastSeen(id int, ts int64) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		key := notaryKey(id)

		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		n := new(Notary)
		if err := n.Unmarshal(data); err != nil {
			return cm.NewStoreErr("Notary", cm.Corrupt, fmt.Sprint(id))
		}

		n.LastSeen = ts

		val, err := n.Marshal()
		if err != nil {
			return err
		}

		return txn.Set(key, val)
	})

	return mapError(err, "Notary", fmt.Sprint(id))
}

// Notaries implements the Store interface.
func (s *BadgerStore) Notaries() ([]*Notary, error) {
	res := []*Notary{}

	err := s.dbIterate([]byte(notaryPrefix+"_"), func(data []byte) error {
		n := new(Notary)
		if err := n.Unmarshal(data); err != nil {
			return err
		}
		res = append(res, n)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return res, nil
}

// GetIPLog implements the Store interface.
func (s *BadgerStore) GetIPLog(notaryID int, address string) (*IPLogEntry, error) {
	key := ipLogKey(notaryID, address)

	data, err := s.dbGet(key)
	if err != nil {
		return nil, mapError(err, "IPLog", string(key))
	}

	e := new(IPLogEntry)
	if err := e.Unmarshal(data); err != nil {
		return nil, cm.NewStoreErr("IPLog", cm.Corrupt, string(key))
	}

	return e, nil
}

// SetIPLog implements the Store interface.
func (s *BadgerStore) SetIPLog(e *IPLogEntry) error {
	val, err := e.Marshal()
	if err != nil {
		return err
	}

	return s.dbSet(ipLogKey(e.NotaryID, e.Address), val)
}

// IPLogs implements the Store interface.
func (s *BadgerStore) IPLogs(notaryID int) ([]*IPLogEntry, error) {
	res := []*IPLogEntry{}

	err := s.dbIterate(ipLogNotaryPrefix(notaryID), func(data []byte) error {
		e := new(IPLogEntry)
		if err := e.Unmarshal(data); err != nil {
			return err
		}
		res = append(res, e)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return res, nil
}

// AddKnownIP implements the Store interface. The address index and the
// id-ordered row are written in the same transaction.
func (s *BadgerStore) AddKnownIP(address string) (*KnownIP, bool, error) {
	addrKey := knownAddrKey(address)

	known, err := s.getKnownIP(addrKey)
	if err == nil {
		return known, false, nil
	}
	if !isDBKeyNotFound(err) {
		return nil, false, err
	}

	next, err := s.seq.Next()
	if err != nil {
		return nil, false, err
	}

	known = &KnownIP{
		ID:      next + 1,
		Address: address,
	}

	val, err := known.Marshal()
	if err != nil {
		return nil, false, err
	}

	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	if err := tx.Set(addrKey, val); err != nil {
		return nil, false, err
	}
	if err := tx.Set(knownIDKey(known.ID), val); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	return known, true, nil
}

func (s *BadgerStore) getKnownIP(addrKey []byte) (*KnownIP, error) {
	data, err := s.dbGet(addrKey)
	if err != nil {
		return nil, err
	}

	known := new(KnownIP)
	if err := known.Unmarshal(data); err != nil {
		return nil, cm.NewStoreErr("KnownIP", cm.Corrupt, string(addrKey))
	}

	return known, nil
}

// KnownIPs implements the Store interface.
func (s *BadgerStore) KnownIPs() ([]*KnownIP, error) {
	res := []*KnownIP{}

	err := s.dbIterate([]byte(knownIDPrefix+"_"), func(data []byte) error {
		k := new(KnownIP)
		if err := k.Unmarshal(data); err != nil {
			return err
		}
		res = append(res, k)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return res, nil
}

// GetNotaryKnownIP implements the Store interface.
func (s *BadgerStore) GetNotaryKnownIP(notaryID int, ipID uint64) (*NotaryKnownIP, error) {
	key := assocKey(notaryID, ipID)

	data, err := s.dbGet(key)
	if err != nil {
		return nil, mapError(err, "NotaryKnownIP", string(key))
	}

	a := new(NotaryKnownIP)
	if err := a.Unmarshal(data); err != nil {
		return nil, cm.NewStoreErr("NotaryKnownIP", cm.Corrupt, string(key))
	}

	return a, nil
}

// SetNotaryKnownIP implements the Store interface.
func (s *BadgerStore) SetNotaryKnownIP(a *NotaryKnownIP) error {
	val, err := a.Marshal()
	if err != nil {
		return err
	}

	return s.dbSet(assocKey(a.NotaryID, a.IPID), val)
}

// Close releases the id sequence and closes the Badger database.
func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		return err
	}
	return s.db.Close()
}

// StorePath returns the full path of the underlying Badger database directory.
func (s *BadgerStore) StorePath() string {
	return s.path
}

/*******************************************************************************
DB Methods
*******************************************************************************/

func (s *BadgerStore) dbGet(key []byte) ([]byte, error) {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		return nil, err
	}

	return data, nil
}

func (s *BadgerStore) dbSet(key, val []byte) error {
	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	if err := tx.Set(key, val); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *BadgerStore) dbIterate(prefix []byte, fn func(data []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}

		return nil
	})
}

//++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++

func isDBKeyNotFound(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}

func mapError(err error, name, key string) error {
	if isDBKeyNotFound(err) {
		return cm.NewStoreErr(name, cm.KeyNotFound, key)
	}
	return err
}
