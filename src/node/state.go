package node

import "sync/atomic"

// State captures the state of a relay node: Idle, Bootstrapping, CatchingUp,
// Steady, or Shutdown
type State uint32

const (
	// Idle is the state of a node that has not been initialised.
	Idle State = iota
	// Bootstrapping binds the local endpoint and dials the bootstrap peer.
	Bootstrapping
	// CatchingUp dials every address already in the known pool.
	CatchingUp
	// Steady reads, authenticates and records packets, and dials newly
	// discovered peers.
	Steady
	// Shutdown is terminal.
	Shutdown
)

// String ...
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Bootstrapping:
		return "Bootstrapping"
	case CatchingUp:
		return "CatchingUp"
	case Steady:
		return "Steady"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

type state struct {
	state State
}

func (b *state) getState() State {
	stateAddr := (*uint32)(&b.state)
	return State(atomic.LoadUint32(stateAddr))
}

func (b *state) setState(s State) {
	stateAddr := (*uint32)(&b.state)
	atomic.StoreUint32(stateAddr, uint32(s))
}

// casState moves from old to s and reports whether it did. Shutdown can be
// entered from any goroutine, so transitions out of a state the loop is
// about to leave must not overwrite it.
func (b *state) casState(old, s State) bool {
	stateAddr := (*uint32)(&b.state)
	return atomic.CompareAndSwapUint32(stateAddr, uint32(old), uint32(s))
}
