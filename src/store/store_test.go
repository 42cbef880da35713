package store

import (
	"path/filepath"
	"testing"

	cm "github.com/dpowrelay/relay/src/common"
)

func initBadgerStore(t *testing.T) *BadgerStore {
	dir := filepath.Join(t.TempDir(), "badger")

	store, err := NewBadgerStore(dir, cm.NewTestEntry(t, cm.TestLogLevel))
	if err != nil {
		t.Fatal(err)
	}

	return store
}

func testNotaryMethods(t *testing.T, s Store) {
	inserted, err := s.SeedNotary(&Notary{ID: 3, Name: "alpha"})
	if err != nil {
		t.Fatal(err)
	}
	if !inserted {
		t.Fatalf("first seed should insert")
	}

	if err := s.SetNotaryLastSeen(3, 1000); err != nil {
		t.Fatal(err)
	}

	inserted, err = s.SeedNotary(&Notary{ID: 3, Name: "beta"})
	if err != nil {
		t.Fatal(err)
	}
	if inserted {
		t.Fatalf("second seed should not insert")
	}

	n, err := s.GetNotary(3)
	if err != nil {
		t.Fatal(err)
	}
	if n.Name != "alpha" || n.LastSeen != 1000 {
		t.Fatalf("seeding must not overwrite an existing notary: %+v", n)
	}

	if _, err := s.GetNotary(4); !cm.IsStore(err, cm.KeyNotFound) {
		t.Fatalf("expected KeyNotFound, got %v", err)
	}
	if err := s.SetNotaryLastSeen(4, 1); !cm.IsStore(err, cm.KeyNotFound) {
		t.Fatalf("expected KeyNotFound, got %v", err)
	}

	if _, err := s.SeedNotary(&Notary{ID: 1, Name: "one"}); err != nil {
		t.Fatal(err)
	}
	all, err := s.Notaries()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 3 {
		t.Fatalf("notaries should be ordered by id: %+v", all)
	}
}

func testIPLogMethods(t *testing.T, s Store) {
	if _, err := s.GetIPLog(5, "1.1.1.1"); !cm.IsStore(err, cm.KeyNotFound) {
		t.Fatalf("expected KeyNotFound, got %v", err)
	}

	entries := []*IPLogEntry{
		{NotaryID: 5, Address: "2.2.2.2", FirstSeen: 1, LastSeen: 2},
		{NotaryID: 5, Address: "1.1.1.1", FirstSeen: 3, LastSeen: 4},
		{NotaryID: 50, Address: "1.1.1.1", FirstSeen: 5, LastSeen: 6},
	}
	for _, e := range entries {
		if err := s.SetIPLog(e); err != nil {
			t.Fatal(err)
		}
	}

	e, err := s.GetIPLog(5, "1.1.1.1")
	if err != nil {
		t.Fatal(err)
	}
	if e.FirstSeen != 3 || e.LastSeen != 4 {
		t.Fatalf("unexpected entry %+v", e)
	}

	logs, err := s.IPLogs(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 2 || logs[0].Address != "1.1.1.1" || logs[1].Address != "2.2.2.2" {
		t.Fatalf("unexpected ip logs for notary 5: %+v", logs)
	}
}

func testKnownIPMethods(t *testing.T, s Store) {
	a, inserted, err := s.AddKnownIP("9.9.9.9")
	if err != nil {
		t.Fatal(err)
	}
	if !inserted {
		t.Fatalf("first add should insert")
	}

	b, inserted, err := s.AddKnownIP("8.8.8.8")
	if err != nil {
		t.Fatal(err)
	}
	if !inserted || b.ID <= a.ID {
		t.Fatalf("ids should increase with insertion: %d then %d", a.ID, b.ID)
	}

	again, inserted, err := s.AddKnownIP("9.9.9.9")
	if err != nil {
		t.Fatal(err)
	}
	if inserted || again.ID != a.ID {
		t.Fatalf("second add should return the existing row")
	}

	known, err := s.KnownIPs()
	if err != nil {
		t.Fatal(err)
	}
	if len(known) != 2 || known[0].Address != "9.9.9.9" || known[1].Address != "8.8.8.8" {
		t.Fatalf("known ips should be in insertion order: %+v", known)
	}

	if _, err := s.GetNotaryKnownIP(5, a.ID); !cm.IsStore(err, cm.KeyNotFound) {
		t.Fatalf("expected KeyNotFound, got %v", err)
	}

	if err := s.SetNotaryKnownIP(&NotaryKnownIP{NotaryID: 5, IPID: a.ID, FirstSeen: 7, LastSeen: 8}); err != nil {
		t.Fatal(err)
	}

	assoc, err := s.GetNotaryKnownIP(5, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if assoc.FirstSeen != 7 || assoc.LastSeen != 8 {
		t.Fatalf("unexpected association %+v", assoc)
	}
}

func TestInmemStore(t *testing.T) {
	testNotaryMethods(t, NewInmemStore())
	testIPLogMethods(t, NewInmemStore())
	testKnownIPMethods(t, NewInmemStore())
}

func TestInmemStoreClosed(t *testing.T) {
	s := NewInmemStore()
	s.Close()

	if _, err := s.SeedNotary(&Notary{ID: 1}); !cm.IsStore(err, cm.Closed) {
		t.Fatalf("expected Closed, got %v", err)
	}
	if _, _, err := s.AddKnownIP("1.1.1.1"); !cm.IsStore(err, cm.Closed) {
		t.Fatalf("expected Closed, got %v", err)
	}
}

func TestBadgerStore(t *testing.T) {
	for _, fn := range []func(*testing.T, Store){
		testNotaryMethods,
		testIPLogMethods,
		testKnownIPMethods,
	} {
		s := initBadgerStore(t)
		fn(t, s)
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBadgerStoreReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	s, err := NewBadgerStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.SeedNotary(&Notary{ID: 63, Name: "dragonhound_DEV"}); err != nil {
		t.Fatal(err)
	}
	first, _, err := s.AddKnownIP("1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewBadgerStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.StorePath() != dir {
		t.Fatalf("store path should be %s, not %s", dir, s.StorePath())
	}

	n, err := s.GetNotary(63)
	if err != nil {
		t.Fatal(err)
	}
	if n.Name != "dragonhound_DEV" {
		t.Fatalf("unexpected notary %+v", n)
	}

	second, inserted, err := s.AddKnownIP("4.3.2.1")
	if err != nil {
		t.Fatal(err)
	}
	if !inserted || second.ID <= first.ID {
		t.Fatalf("ids should keep increasing across restarts: %d then %d", first.ID, second.ID)
	}

	known, err := s.KnownIPs()
	if err != nil {
		t.Fatal(err)
	}
	if len(known) != 2 || known[0].Address != "1.2.3.4" {
		t.Fatalf("known pool should survive a restart: %+v", known)
	}
}
