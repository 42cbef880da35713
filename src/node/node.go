package node

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/dpowrelay/relay/src/auth"
	"github.com/dpowrelay/relay/src/crypto/keys"
	"github.com/dpowrelay/relay/src/ledger"
	"github.com/dpowrelay/relay/src/net"
	"github.com/dpowrelay/relay/src/notary"
	"github.com/dpowrelay/relay/src/store"
	"github.com/dpowrelay/relay/src/wire"
	"github.com/sirupsen/logrus"
)

// Node defines a relay node
type Node struct {
	state

	conf   *Config
	logger *logrus.Entry

	registry *notary.Registry
	ledger   *ledger.Ledger

	trans  net.Transport
	reader *wire.FrameReader
	dialer *Dialer
	toggle *Toggle

	stats *stats

	sigintCh     chan os.Signal
	shutdownCh   chan struct{}
	shutdownOnce sync.Once

	start time.Time
}

// NewNode is a factory method that returns a Node instance
func NewNode(conf *Config,
	registry *notary.Registry,
	ledger *ledger.Ledger,
	trans net.Transport,
) *Node {
	//Prepare sigintCh to relay SIGINT system calls
	sigintCh := make(chan os.Signal, 1)
	signal.Notify(sigintCh, os.Interrupt, syscall.SIGTERM)

	if conf.Now == nil {
		conf.Now = time.Now
	}

	logger := conf.Logger.WithField("listen", conf.BindAddr)

	node := Node{
		conf:     conf,
		logger:   logger,
		registry: registry,
		ledger:   ledger,
		trans:    trans,
		reader:   wire.NewFrameReader(),
		dialer: NewDialer(trans, conf.DialPort, []string{
			conf.BindAddr,
			conf.AdvertiseAddr,
			conf.BootstrapAddr,
		}, logger),
		toggle:     NewToggle(conf.Gossip),
		stats:      newStats(),
		sigintCh:   sigintCh,
		shutdownCh: make(chan struct{}),
	}

	return &node
}

// Init validates the configuration and prepares the node to bootstrap.
func (n *Node) Init() error {
	if err := n.conf.Layout.Validate(); err != nil {
		return err
	}

	if n.conf.DialPort <= 0 || n.conf.DialPort > 65535 {
		return fmt.Errorf("invalid dial port %d", n.conf.DialPort)
	}

	if n.conf.StoreRetries < 0 {
		return fmt.Errorf("invalid store retries %d", n.conf.StoreRetries)
	}

	n.logger.WithFields(logrus.Fields{
		"addr_capacity": n.conf.Layout.AddrCapacity,
		"catch_up":      n.conf.CatchUp,
		"gossip":        n.toggle.Enabled(),
	}).Debug("Init")

	n.start = time.Now()
	n.setState(Bootstrapping)

	return nil
}

// RunAsync calls Run as a separate thread
func (n *Node) RunAsync() {
	n.logger.Debug("runasync")

	go n.Run()
}

// Run invokes the main loop of the node. It returns once the node is shut
// down.
func (n *Node) Run() {
	//Execute some background work regardless of the state of the node.
	go n.doBackgroundWork()

	//Execute Node State Machine
	for {
		state := n.getState()

		n.logger.WithField("state", state.String()).Debug("Run loop")

		switch state {
		case Bootstrapping:
			n.bootstrap()
		case CatchingUp:
			n.catchUp()
		case Steady:
			n.steady()
		case Shutdown:
			return
		default:
			n.logger.Error("Node is not initialised")
			return
		}
	}
}

func (n *Node) doBackgroundWork() {
	select {
	case <-n.shutdownCh:
	case sig := <-n.sigintCh:
		n.logger.WithField("signal", sig.String()).Info("Reacting to signal")
		n.Shutdown()
	}
}

// bootstrap binds the local endpoint and dials the bootstrap peer.
func (n *Node) bootstrap() {
	n.logger.Debug("BOOTSTRAPPING")

	if err := n.trans.Listen(n.conf.BindAddr); err != nil {
		n.logger.WithError(err).Error("Cannot bind local endpoint")
		n.Shutdown()
		return
	}

	n.logger.WithField("local_addr", n.trans.LocalAddr()).Info("Listening")

	if n.conf.BootstrapAddr != "" {
		if n.dialer.Dial(n.conf.BootstrapAddr) {
			n.stats.dials.Add(1)
		}
	}

	next := Steady
	if n.conf.CatchUp {
		next = CatchingUp
	}

	n.casState(Bootstrapping, next)
}

// catchUp dials every address of the known pool.
func (n *Node) catchUp() {
	n.logger.Debug("CATCHING UP")

	var known []wire.Address

	err := n.withRetry("known_addresses", func() error {
		var err error
		known, err = n.ledger.KnownAddresses()
		return err
	})

	if err == nil {
		dials := n.dialer.DialAll(known)
		n.stats.dials.Add(uint64(dials))

		n.logger.WithFields(logrus.Fields{
			"known": len(known),
			"dials": dials,
		}).Info("Caught up with known pool")
	}

	n.casState(CatchingUp, Steady)
}

// steady reads the transport until the node is shut down.
func (n *Node) steady() {
	n.logger.Debug("STEADY")

	for n.getState() == Steady {
		b, err := n.trans.Recv()
		if err != nil {
			switch {
			case errors.Is(err, net.ErrRecvTimeout):
			case errors.Is(err, net.ErrTransportShutdown):
				n.Shutdown()
				return
			default:
				n.logger.WithError(err).Warn("Recv")
			}
			continue
		}

		n.ingest(b)
	}
}

// ingest feeds transport bytes to the frame reader and processes every
// complete frame in arrival order.
func (n *Node) ingest(b []byte) {
	n.reader.Feed(b)

	for f, err := range n.reader.Frames() {
		if err != nil {
			n.stats.drop(dropOversized)
			n.logger.WithError(err).Warn("Discarding buffered bytes")
			continue
		}

		// a hash mismatch with bytes still buffered means the stream lost
		// frame alignment; drop the rest so the next message starts clean
		if resync := n.processFrame(f); resync && n.reader.Buffered() > 0 {
			n.logger.WithField("bytes", n.reader.Buffered()).Warn("Discarding buffered bytes after hash mismatch")
			n.reader.Reset()
			return
		}
	}
}

// processFrame runs the pipeline on one frame. It reports whether the frame
// failed the packet hash check.
func (n *Node) processFrame(f *wire.Frame) bool {
	n.stats.frames.Add(1)

	logger := n.logger.WithField("nonce", f.Header.Nonce)

	pub, err := auth.Authenticate(f.Header, f.Payload)
	if err != nil {
		mismatch := errors.Is(err, auth.ErrHashMismatch)
		if mismatch {
			n.stats.drop(dropHashMismatch)
		} else {
			n.stats.drop(dropSignature)
		}
		logger.WithError(err).Warn("Dropping packet")
		return mismatch
	}

	msg, err := f.Message(n.conf.Layout)
	if err != nil {
		n.stats.drop(dropShortPayload)
		logger.WithError(err).Warn("Dropping packet")
		return false
	}

	id := int(msg.SenderInd)

	if err := notary.CheckSender(id); err != nil {
		n.stats.drop(dropSender)
		logger.WithError(err).Warn("Dropping packet")
		return false
	}

	n.stats.accepted.Add(1)

	logger.WithFields(logrus.Fields{
		"sender":  id,
		"notary":  notary.DefaultRoster.Name(id),
		"pubkey":  keys.PublicKeyHex(pub),
		"symbol":  msg.SymbolString(),
		"height":  msg.Height,
		"channel": msg.Channel.String(),
		"myaddr":  msg.MyAddress.String(),
	}).Debug("Accepted packet")

	ts := n.conf.Now().Unix()

	n.withRetry("touch", func() error {
		return n.registry.Touch(id, ts)
	})

	n.withRetry("own_ip", func() error {
		return n.ledger.RecordOwnIP(id, msg.MyAddress, ts)
	})

	var fresh []wire.Address

	n.withRetry("known_ips", func() error {
		got, err := n.ledger.RecordKnownIPs(id, msg.Addrs, ts)
		fresh = append(fresh, got...)
		return err
	})

	if len(fresh) == 0 {
		return false
	}

	logger.WithField("count", len(fresh)).Info("Discovered new addresses")

	if !n.toggle.Enabled() {
		return false
	}

	dials := n.dialer.DialAll(fresh)
	n.stats.dials.Add(uint64(dials))

	return false
}

// withRetry runs a store operation, retrying failures StoreRetries times.
// The last error is logged and returned; callers move on regardless.
func (n *Node) withRetry(op string, f func() error) error {
	var err error

	for attempt := 0; attempt <= n.conf.StoreRetries; attempt++ {
		if err = f(); err == nil {
			return nil
		}

		if errors.Is(err, notary.ErrInvalidSender) {
			break
		}

		n.logger.WithError(err).WithFields(logrus.Fields{
			"op":      op,
			"attempt": attempt,
		}).Debug("Store operation failed")
	}

	n.stats.storeErrors.Add(1)

	n.logger.WithError(err).WithField("op", op).Error("Skipping store operation")

	return err
}

// Shutdown stops the node and closes its transport. It is safe to call more
// than once and from any goroutine.
func (n *Node) Shutdown() {
	n.shutdownOnce.Do(func() {
		n.logger.Debug("Shutdown")

		//Exit any non-shutdown state immediately
		n.setState(Shutdown)

		close(n.shutdownCh)

		signal.Stop(n.sigintCh)

		if err := n.trans.Close(); err != nil {
			n.logger.WithError(err).Warn("Closing transport")
		}
	})
}

// GossipToggle returns the switch controlling dial-on-discovery.
func (n *Node) GossipToggle() *Toggle {
	return n.toggle
}

// GetState returns the current state of the node.
func (n *Node) GetState() State {
	return n.getState()
}

// GetStats returns counters describing the activity of the node.
func (n *Node) GetStats() map[string]string {
	s := map[string]string{
		"state":      n.getState().String(),
		"gossip":     strconv.FormatBool(n.toggle.Enabled()),
		"dialed":     strconv.Itoa(len(n.dialer.Dialed())),
		"local_addr": n.trans.LocalAddr(),
	}

	if !n.start.IsZero() {
		s["uptime"] = time.Since(n.start).Truncate(time.Second).String()
	}

	n.stats.fill(s)

	return s
}

// GetNotaries returns the roster with last-seen times.
func (n *Node) GetNotaries() ([]*store.Notary, error) {
	return n.registry.All()
}

// Dialed returns the endpoints dialed so far, in order.
func (n *Node) Dialed() []string {
	return n.dialer.Dialed()
}
