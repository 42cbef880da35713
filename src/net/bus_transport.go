package net

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/bus"

	// register the tcp:// transport
	_ "go.nanomsg.org/mangos/v3/transport/tcp"
)

// BusTransport implements the Transport interface with a nanomsg BUS socket,
// the socket type dPoW notaries gossip on.
type BusTransport struct {
	sock   mangos.Socket
	logger *logrus.Entry

	local     string
	localLock sync.RWMutex

	shutdown     bool
	shutdownLock sync.Mutex
}

// NewBusTransport opens a BUS socket. A positive recvTimeout makes Recv
// return ErrRecvTimeout when nothing arrived in time.
func NewBusTransport(recvTimeout time.Duration, logger *logrus.Entry) (*BusTransport, error) {
	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	sock, err := bus.NewSocket()
	if err != nil {
		return nil, err
	}

	if recvTimeout > 0 {
		if err := sock.SetOption(mangos.OptionRecvDeadline, recvTimeout); err != nil {
			sock.Close()
			return nil, err
		}
	}

	return &BusTransport{
		sock:   sock,
		logger: logger,
	}, nil
}

// Listen implements the Transport interface.
func (b *BusTransport) Listen(addr string) error {
	if err := b.sock.Listen(addr); err != nil {
		return b.mapError(err)
	}

	b.localLock.Lock()
	b.local = addr
	b.localLock.Unlock()

	b.logger.WithField("addr", addr).Debug("Listening")

	return nil
}

// Dial implements the Transport interface.
func (b *BusTransport) Dial(addr string) error {
	err := b.sock.DialOptions(addr, map[string]interface{}{
		mangos.OptionDialAsynch: true,
	})
	return b.mapError(err)
}

// Recv implements the Transport interface.
func (b *BusTransport) Recv() ([]byte, error) {
	msg, err := b.sock.Recv()
	if err != nil {
		return nil, b.mapError(err)
	}
	return msg, nil
}

// Send implements the Transport interface.
func (b *BusTransport) Send(msg []byte) error {
	return b.mapError(b.sock.Send(msg))
}

// LocalAddr implements the Transport interface.
func (b *BusTransport) LocalAddr() string {
	b.localLock.RLock()
	defer b.localLock.RUnlock()
	return b.local
}

// Close implements the Transport interface.
func (b *BusTransport) Close() error {
	b.shutdownLock.Lock()
	defer b.shutdownLock.Unlock()

	if b.shutdown {
		return nil
	}
	b.shutdown = true

	return b.sock.Close()
}

func (b *BusTransport) mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mangos.ErrClosed):
		return ErrTransportShutdown
	case errors.Is(err, mangos.ErrRecvTimeout):
		return ErrRecvTimeout
	default:
		return err
	}
}
