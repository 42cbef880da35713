package net

import (
	"crypto/rand"
	"fmt"
	"sync"
)

// inmemBus routes in-memory transports by listen address.
var inmemBus = struct {
	sync.RWMutex
	listeners map[string]*InmemTransport
}{
	listeners: make(map[string]*InmemTransport),
}

// NewInmemAddr returns a new in-memory addr with
// a randomly generate UUID as the ID.
func NewInmemAddr() string {
	return "inmem://" + generateUUID()
}

// generateUUID is used to generate a random UUID.
func generateUUID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Errorf("failed to read random bytes: %v", err))
	}

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%12x",
		buf[0:4],
		buf[4:6],
		buf[6:8],
		buf[8:10],
		buf[10:16])
}

// InmemTransport Implements the Transport interface, to allow relays to be
// tested in-memory without going over a network. Like a nanomsg bus, dialing
// an address nobody listens on succeeds, and connections are symmetric.
type InmemTransport struct {
	sync.RWMutex
	consumerCh chan []byte
	localAddr  string
	peers      map[string]*InmemTransport
	dials      []string
	shutdownCh chan struct{}
	shutdown   bool
}

// NewInmemTransport is used to initialize a new transport
// and generates a random local address if none is specified
func NewInmemTransport(addr string) (string, *InmemTransport) {
	if addr == "" {
		addr = NewInmemAddr()
	}
	trans := &InmemTransport{
		consumerCh: make(chan []byte, 64),
		localAddr:  addr,
		peers:      make(map[string]*InmemTransport),
		shutdownCh: make(chan struct{}),
	}
	return addr, trans
}

// Listen implements the Transport interface. It registers the transport under
// addr so that other in-memory transports can dial it.
func (i *InmemTransport) Listen(addr string) error {
	inmemBus.Lock()
	defer inmemBus.Unlock()

	if other, ok := inmemBus.listeners[addr]; ok && other != i {
		return fmt.Errorf("address already in use: %s", addr)
	}
	inmemBus.listeners[addr] = i

	i.Lock()
	i.localAddr = addr
	i.Unlock()

	return nil
}

// Dial implements the Transport interface.
func (i *InmemTransport) Dial(addr string) error {
	i.Lock()
	if i.shutdown {
		i.Unlock()
		return ErrTransportShutdown
	}
	i.dials = append(i.dials, addr)
	i.Unlock()

	inmemBus.RLock()
	peer, ok := inmemBus.listeners[addr]
	inmemBus.RUnlock()

	if ok {
		i.Connect(addr, peer)
		peer.Connect(i.LocalAddr(), i)
	}

	return nil
}

// Recv implements the Transport interface.
func (i *InmemTransport) Recv() ([]byte, error) {
	select {
	case msg := <-i.consumerCh:
		return msg, nil
	case <-i.shutdownCh:
		return nil, ErrTransportShutdown
	}
}

// Send implements the Transport interface. Messages are dropped for peers
// whose queue is full, as a bus socket would.
func (i *InmemTransport) Send(msg []byte) error {
	i.RLock()
	defer i.RUnlock()

	if i.shutdown {
		return ErrTransportShutdown
	}

	for _, p := range i.peers {
		p.Deliver(msg)
	}

	return nil
}

// Deliver queues msg as if a peer had sent it.
func (i *InmemTransport) Deliver(msg []byte) {
	cp := make([]byte, len(msg))
	copy(cp, msg)

	select {
	case i.consumerCh <- cp:
	default:
	}
}

// LocalAddr implements the Transport interface.
func (i *InmemTransport) LocalAddr() string {
	i.RLock()
	defer i.RUnlock()
	return i.localAddr
}

// Dials returns every address passed to Dial, in order.
func (i *InmemTransport) Dials() []string {
	i.RLock()
	defer i.RUnlock()

	res := make([]string, len(i.dials))
	copy(res, i.dials)
	return res
}

// Connect is used to connect this transport to another transport for
// a given peer name. This allows for local routing.
func (i *InmemTransport) Connect(peer string, t *InmemTransport) {
	i.Lock()
	defer i.Unlock()
	i.peers[peer] = t
}

// Disconnect is used to remove the ability to route to a given peer.
func (i *InmemTransport) Disconnect(peer string) {
	i.Lock()
	defer i.Unlock()
	delete(i.peers, peer)
}

// DisconnectAll is used to remove all routes to peers.
func (i *InmemTransport) DisconnectAll() {
	i.Lock()
	defer i.Unlock()
	i.peers = make(map[string]*InmemTransport)
}

// Close is used to permanently disable the transport
func (i *InmemTransport) Close() error {
	i.Lock()
	if i.shutdown {
		i.Unlock()
		return nil
	}
	i.shutdown = true
	close(i.shutdownCh)
	addr := i.localAddr
	i.Unlock()

	i.DisconnectAll()

	inmemBus.Lock()
	if inmemBus.listeners[addr] == i {
		delete(inmemBus.listeners, addr)
	}
	inmemBus.Unlock()

	return nil
}
