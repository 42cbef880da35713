package notary

import (
	"errors"
	"testing"

	"github.com/dpowrelay/relay/src/common"
	"github.com/dpowrelay/relay/src/store"
)

func TestSeedIdempotent(t *testing.T) {
	s := store.NewInmemStore()
	r := NewRegistry(s, common.NewTestEntry(t, common.TestLogLevel))

	if err := r.Seed(&DefaultRoster); err != nil {
		t.Fatal(err)
	}

	if err := r.Touch(63, 1700000000); err != nil {
		t.Fatal(err)
	}

	if err := r.Seed(&DefaultRoster); err != nil {
		t.Fatal(err)
	}

	all, err := r.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != Count {
		t.Fatalf("expected %d notaries, got %d", Count, len(all))
	}

	for id, n := range all {
		if n.ID != id || n.Name != DefaultRoster.Name(id) {
			t.Fatalf("slot %d holds %+v", id, n)
		}
	}

	if all[63].LastSeen != 1700000000 {
		t.Fatalf("reseeding must not reset last-seen, got %d", all[63].LastSeen)
	}
	if all[0].LastSeen != 0 {
		t.Fatalf("seeded notaries start with last-seen 0")
	}
}

func TestTouchInvalidSender(t *testing.T) {
	r := NewRegistry(store.NewInmemStore(), common.NewTestEntry(t, common.TestLogLevel))
	if err := r.Seed(&DefaultRoster); err != nil {
		t.Fatal(err)
	}

	for _, id := range []int{64, 255, -1} {
		if err := r.Touch(id, 1); !errors.Is(err, ErrInvalidSender) {
			t.Fatalf("id %d: expected ErrInvalidSender, got %v", id, err)
		}
		if _, err := r.Get(id); !errors.Is(err, ErrInvalidSender) {
			t.Fatalf("id %d: expected ErrInvalidSender, got %v", id, err)
		}
	}

	n, err := r.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if n.Name != "blackice_DEV" {
		t.Fatalf("unexpected notary %+v", n)
	}
}

func TestRosterName(t *testing.T) {
	if DefaultRoster.Name(63) != "dragonhound_DEV" {
		t.Fatalf("unexpected name %s", DefaultRoster.Name(63))
	}
	if DefaultRoster.Name(64) != "" {
		t.Fatalf("out of range index should have no name")
	}

	seen := map[string]bool{}
	for _, name := range DefaultRoster {
		if name == "" || seen[name] {
			t.Fatalf("roster names should be unique and non empty: %q", name)
		}
		seen[name] = true
	}
}
