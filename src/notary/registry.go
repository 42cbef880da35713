package notary

import (
	"errors"
	"fmt"

	"github.com/dpowrelay/relay/src/store"
	"github.com/sirupsen/logrus"
)

// ErrInvalidSender is returned for notary indices outside [0, Count).
var ErrInvalidSender = errors.New("invalid sender index")

// Registry keeps the notary roster and the time each notary was last seen.
type Registry struct {
	store  store.Store
	logger *logrus.Entry
}

// NewRegistry ...
func NewRegistry(s store.Store, logger *logrus.Entry) *Registry {
	return &Registry{
		store:  s,
		logger: logger,
	}
}

// CheckSender returns ErrInvalidSender unless id is a roster index.
func CheckSender(id int) error {
	if id < 0 || id >= Count {
		return fmt.Errorf("%w: %d", ErrInvalidSender, id)
	}
	return nil
}

// Seed inserts every roster entry missing from the store with a zero
// last-seen time. Existing rows are left untouched, so Seed can run at every
// startup.
func (r *Registry) Seed(roster *Roster) error {
	seeded := 0

	for id, name := range roster {
		inserted, err := r.store.SeedNotary(&store.Notary{
			ID:   id,
			Name: name,
		})
		if err != nil {
			return fmt.Errorf("seeding notary %d: %w", id, err)
		}
		if inserted {
			seeded++
		}
	}

	r.logger.WithField("seeded", seeded).Debug("Notary roster ready")

	return nil
}

// Touch records that notary id was seen at ts.
func (r *Registry) Touch(id int, ts int64) error {
	if err := CheckSender(id); err != nil {
		return err
	}
	return r.store.SetNotaryLastSeen(id, ts)
}

// Get returns a notary row.
func (r *Registry) Get(id int) (*store.Notary, error) {
	if err := CheckSender(id); err != nil {
		return nil, err
	}
	return r.store.GetNotary(id)
}

// All returns every notary row ordered by id.
func (r *Registry) All() ([]*store.Notary, error) {
	return r.store.Notaries()
}
