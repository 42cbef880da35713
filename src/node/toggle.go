package node

import "sync"

// Toggle is the runtime switch controlling whether newly discovered peers
// are dialed. The control service writes it, the ingest loop reads it.
type Toggle struct {
	mu sync.Mutex
	on bool
}

// NewToggle ...
func NewToggle(on bool) *Toggle {
	return &Toggle{on: on}
}

// Set ...
func (t *Toggle) Set(on bool) {
	t.mu.Lock()
	t.on = on
	t.mu.Unlock()
}

// Enabled ...
func (t *Toggle) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}
