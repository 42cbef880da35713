package node

import (
	"strconv"
	"sync/atomic"
)

// Drop reasons reported in the stats.
const (
	dropHashMismatch = "hash_mismatch"
	dropSignature    = "bad_signature"
	dropShortPayload = "short_payload"
	dropSender       = "invalid_sender"
	dropOversized    = "oversized_frame"
)

var dropReasons = []string{
	dropHashMismatch,
	dropSignature,
	dropShortPayload,
	dropSender,
	dropOversized,
}

type stats struct {
	frames      atomic.Uint64
	accepted    atomic.Uint64
	dials       atomic.Uint64
	storeErrors atomic.Uint64
	dropped     map[string]*atomic.Uint64
}

func newStats() *stats {
	s := &stats{dropped: make(map[string]*atomic.Uint64)}
	for _, r := range dropReasons {
		s.dropped[r] = new(atomic.Uint64)
	}
	return s
}

func (s *stats) drop(reason string) {
	s.dropped[reason].Add(1)
}

func (s *stats) droppedTotal() uint64 {
	var total uint64
	for _, c := range s.dropped {
		total += c.Load()
	}
	return total
}

func (s *stats) fill(m map[string]string) {
	u := func(v uint64) string { return strconv.FormatUint(v, 10) }

	m["frames"] = u(s.frames.Load())
	m["accepted"] = u(s.accepted.Load())
	m["dropped"] = u(s.droppedTotal())
	m["dials"] = u(s.dials.Load())
	m["store_errors"] = u(s.storeErrors.Load())
	for r, c := range s.dropped {
		m["dropped_"+r] = u(c.Load())
	}
}
