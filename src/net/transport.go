package net

import "errors"

var (
	// ErrTransportShutdown is returned when operations on a transport are
	// invoked after it's been terminated.
	ErrTransportShutdown = errors.New("transport shutdown")

	// ErrRecvTimeout is returned by Recv when a receive deadline is set and
	// no message arrived in time.
	ErrRecvTimeout = errors.New("receive timeout")
)

// Transport is an unordered multi-peer message bus. Every message sent is
// delivered to all connected peers, and Recv returns messages from any peer
// without telling who sent them.
type Transport interface {

	// Listen binds the local endpoint, e.g. tcp://0.0.0.0:13344.
	Listen(addr string) error

	// Dial connects to a remote endpoint. Dials are asynchronous: the
	// connection is established, and re-established, in the background, so
	// an error only reports an unusable address.
	Dial(addr string) error

	// Recv blocks until a message arrives.
	Recv() ([]byte, error)

	// Send broadcasts a message to the connected peers.
	Send(msg []byte) error

	// LocalAddr is used to return our local address
	LocalAddr() string

	// Close permanently closes a transport, unblocking Recv and freeing
	// associated resources.
	Close() error
}
