package store

import (
	"fmt"
	"sort"
	"sync"

	cm "github.com/dpowrelay/relay/src/common"
)

type memIPLogKey struct {
	notaryID int
	address  string
}

type memAssocKey struct {
	notaryID int
	ipID     uint64
}

// InmemStore implements the Store interface with maps. It is used by tests
// and by relays started without a database.
type InmemStore struct {
	sync.RWMutex
	notaries  map[int]*Notary
	ipLogs    map[memIPLogKey]*IPLogEntry
	known     []*KnownIP
	knownByIP map[string]*KnownIP
	assocs    map[memAssocKey]*NotaryKnownIP
	closed    bool
}

// NewInmemStore ...
func NewInmemStore() *InmemStore {
	return &InmemStore{
		notaries:  make(map[int]*Notary),
		ipLogs:    make(map[memIPLogKey]*IPLogEntry),
		knownByIP: make(map[string]*KnownIP),
		assocs:    make(map[memAssocKey]*NotaryKnownIP),
	}
}

func (s *InmemStore) checkOpen(dataType string) error {
	if s.closed {
		return cm.NewStoreErr(dataType, cm.Closed, "")
	}
	return nil
}

// SeedNotary implements the Store interface.
func (s *InmemStore) SeedNotary(n *Notary) (bool, error) {
	s.Lock()
	defer s.Unlock()

	if err := s.checkOpen("Notary"); err != nil {
		return false, err
	}

	if _, ok := s.notaries[n.ID]; ok {
		return false, nil
	}

	cp := *n
	s.notaries[n.ID] = &cp

	return true, nil
}

// GetNotary implements the Store interface.
func (s *InmemStore) GetNotary(id int) (*Notary, error) {
	s.RLock()
	defer s.RUnlock()

	n, ok := s.notaries[id]
	if !ok {
		return nil, cm.NewStoreErr("Notary", cm.KeyNotFound, fmt.Sprint(id))
	}

	cp := *n
	return &cp, nil
}

// SetNotaryLastSeen implements the Store interface.
func (s *InmemStore) SetNotaryLastSeen(id int, ts int64) error {
	s.Lock()
	defer s.Unlock()

	if err := s.checkOpen("Notary"); err != nil {
		return err
	}

	n, ok := s.notaries[id]
	if !ok {
		return cm.NewStoreErr("Notary", cm.KeyNotFound, fmt.Sprint(id))
	}

	n.LastSeen = ts

	return nil
}

// Notaries implements the Store interface.
func (s *InmemStore) Notaries() ([]*Notary, error) {
	s.RLock()
	defer s.RUnlock()

	res := make([]*Notary, 0, len(s.notaries))
	for _, n := range s.notaries {
		cp := *n
		res = append(res, &cp)
	}

	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res, nil
}

// GetIPLog implements the Store interface.
func (s *InmemStore) GetIPLog(notaryID int, address string) (*IPLogEntry, error) {
	s.RLock()
	defer s.RUnlock()

	e, ok := s.ipLogs[memIPLogKey{notaryID, address}]
	if !ok {
		return nil, cm.NewStoreErr("IPLog", cm.KeyNotFound, fmt.Sprintf("%d/%s", notaryID, address))
	}

	cp := *e
	return &cp, nil
}

// SetIPLog implements the Store interface.
func (s *InmemStore) SetIPLog(e *IPLogEntry) error {
	s.Lock()
	defer s.Unlock()

	if err := s.checkOpen("IPLog"); err != nil {
		return err
	}

	cp := *e
	s.ipLogs[memIPLogKey{e.NotaryID, e.Address}] = &cp

	return nil
}

// IPLogs implements the Store interface.
func (s *InmemStore) IPLogs(notaryID int) ([]*IPLogEntry, error) {
	s.RLock()
	defer s.RUnlock()

	res := []*IPLogEntry{}
	for k, e := range s.ipLogs {
		if k.notaryID == notaryID {
			cp := *e
			res = append(res, &cp)
		}
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Address < res[j].Address })

	return res, nil
}

// AddKnownIP implements the Store interface.
func (s *InmemStore) AddKnownIP(address string) (*KnownIP, bool, error) {
	s.Lock()
	defer s.Unlock()

	if err := s.checkOpen("KnownIP"); err != nil {
		return nil, false, err
	}

	if k, ok := s.knownByIP[address]; ok {
		cp := *k
		return &cp, false, nil
	}

	k := &KnownIP{
		ID:      uint64(len(s.known) + 1),
		Address: address,
	}
	s.known = append(s.known, k)
	s.knownByIP[address] = k

	cp := *k
	return &cp, true, nil
}

// KnownIPs implements the Store interface.
func (s *InmemStore) KnownIPs() ([]*KnownIP, error) {
	s.RLock()
	defer s.RUnlock()

	res := make([]*KnownIP, 0, len(s.known))
	for _, k := range s.known {
		cp := *k
		res = append(res, &cp)
	}

	return res, nil
}

// GetNotaryKnownIP implements the Store interface.
func (s *InmemStore) GetNotaryKnownIP(notaryID int, ipID uint64) (*NotaryKnownIP, error) {
	s.RLock()
	defer s.RUnlock()

	a, ok := s.assocs[memAssocKey{notaryID, ipID}]
	if !ok {
		return nil, cm.NewStoreErr("NotaryKnownIP", cm.KeyNotFound, fmt.Sprintf("%d/%d", notaryID, ipID))
	}

	cp := *a
	return &cp, nil
}

// SetNotaryKnownIP implements the Store interface.
func (s *InmemStore) SetNotaryKnownIP(a *NotaryKnownIP) error {
	s.Lock()
	defer s.Unlock()

	if err := s.checkOpen("NotaryKnownIP"); err != nil {
		return err
	}

	cp := *a
	s.assocs[memAssocKey{a.NotaryID, a.IPID}] = &cp

	return nil
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	s.Lock()
	defer s.Unlock()

	s.closed = true

	return nil
}

// StorePath implements the Store interface. InmemStore has no path.
func (s *InmemStore) StorePath() string {
	return ""
}
