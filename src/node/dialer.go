package node

import (
	"sync"

	"github.com/dpowrelay/relay/src/net"
	"github.com/dpowrelay/relay/src/wire"
	"github.com/sirupsen/logrus"
)

// Dialer turns addresses learned from gossip into outbound dials. Every
// endpoint is dialed at most once per process, and endpoints designating
// this node or its bootstrap peer are never selected.
type Dialer struct {
	sync.Mutex

	trans   net.Transport
	port    int
	exclude []string
	dialed  map[string]bool
	order   []string

	logger *logrus.Entry
}

// NewDialer returns a Dialer that dials notary addresses on port through
// trans. Endpoints matching one of exclude are skipped by Select.
func NewDialer(trans net.Transport, port int, exclude []string, logger *logrus.Entry) *Dialer {
	ex := make([]string, 0, len(exclude))
	for _, e := range exclude {
		if e != "" {
			ex = append(ex, e)
		}
	}

	return &Dialer{
		trans:   trans,
		port:    port,
		exclude: ex,
		dialed:  make(map[string]bool),
		logger:  logger,
	}
}

// Select returns the endpoints of addrs worth dialing, in order and without
// duplicates. It does not mark them as dialed.
func (d *Dialer) Select(addrs []wire.Address) []string {
	d.Lock()
	defer d.Unlock()

	seen := make(map[string]bool)
	res := []string{}

	for _, a := range addrs {
		if a.IsZero() {
			continue
		}

		endpoint := net.TCPURL(a, d.port)

		if seen[endpoint] || d.dialed[endpoint] || d.excluded(endpoint) {
			continue
		}

		seen[endpoint] = true
		res = append(res, endpoint)
	}

	return res
}

func (d *Dialer) excluded(endpoint string) bool {
	for _, e := range d.exclude {
		if e == endpoint || net.SameEndpoint(e, endpoint) {
			return true
		}
	}
	return false
}

// Dial dials endpoint unless it was dialed before, and reports whether a
// dial was attempted. Failures are logged and the endpoint is not retried.
func (d *Dialer) Dial(endpoint string) bool {
	d.Lock()
	if d.dialed[endpoint] {
		d.Unlock()
		return false
	}
	d.dialed[endpoint] = true
	d.order = append(d.order, endpoint)
	d.Unlock()

	if err := d.trans.Dial(endpoint); err != nil {
		d.logger.WithError(err).WithField("endpoint", endpoint).Warn("Dial failed")
		return true
	}

	d.logger.WithField("endpoint", endpoint).Info("Dialed peer")

	return true
}

// DialAll dials every selected endpoint of addrs and returns how many dials
// were attempted.
func (d *Dialer) DialAll(addrs []wire.Address) int {
	count := 0
	for _, endpoint := range d.Select(addrs) {
		if d.Dial(endpoint) {
			count++
		}
	}
	return count
}

// Dialed returns the endpoints dialed so far, in order.
func (d *Dialer) Dialed() []string {
	d.Lock()
	defer d.Unlock()

	res := make([]string, len(d.order))
	copy(res, d.order)
	return res
}
