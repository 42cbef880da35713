package relay

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dpowrelay/relay/src/config"
	"github.com/dpowrelay/relay/src/crypto/keys"
	"github.com/dpowrelay/relay/src/ledger"
	"github.com/dpowrelay/relay/src/net"
	"github.com/dpowrelay/relay/src/node"
	"github.com/dpowrelay/relay/src/notary"
	"github.com/dpowrelay/relay/src/service"
	"github.com/dpowrelay/relay/src/store"
)

// serviceShutdownTimeout bounds the graceful stop of the HTTP service.
const serviceShutdownTimeout = 5 * time.Second

// Relay is a struct containing the key parts of a relay node
type Relay struct {
	Config    *config.Config
	Node      *node.Node
	Transport net.Transport
	Store     store.Store
	Registry  *notary.Registry
	Ledger    *ledger.Ledger
	Service   *service.Service
}

// NewRelay is a factory method to produce a Relay instance.
func NewRelay(c *config.Config) *Relay {
	engine := &Relay{
		Config: c,
	}

	return engine
}

func (r *Relay) initStore() error {
	if !r.Config.Store {
		r.Store = store.NewInmemStore()

		r.Config.Logger().Debug("created new in-mem store")

		return nil
	}

	r.Config.Logger().WithField("path", r.Config.DatabaseDir).Debug("Attempting to load or create database")

	badgerStore, err := store.NewBadgerStore(r.Config.DatabaseDir, r.Config.Logger())
	if err != nil {
		return err
	}

	r.Store = badgerStore

	return nil
}

func (r *Relay) initRegistry() error {
	r.Registry = notary.NewRegistry(r.Store, r.Config.Logger())

	roster := &notary.DefaultRoster

	jsonRoster := notary.NewJSONRoster(r.Config.DataDir)
	custom, err := jsonRoster.Roster()
	switch {
	case err == nil:
		r.Config.Logger().WithField("path", jsonRoster.Path()).Debug("Loaded roster file")
		roster = custom
	case !os.IsNotExist(err):
		return fmt.Errorf("loading roster: %w", err)
	}

	return r.Registry.Seed(roster)
}

func (r *Relay) initLedger() error {
	r.Ledger = ledger.NewLedger(r.Store, r.Config.Logger())

	return nil
}

func (r *Relay) initTransport() error {
	if r.Config.Transport != nil {
		r.Transport = r.Config.Transport

		return nil
	}

	transport, err := net.NewBusTransport(
		r.Config.RecvTimeout,
		r.Config.Logger(),
	)
	if err != nil {
		return err
	}

	r.Transport = transport

	return nil
}

func (r *Relay) initNode() error {
	conf := &node.Config{
		BindAddr:      r.Config.BindAddr,
		AdvertiseAddr: r.Config.AdvertiseAddr,
		BootstrapAddr: r.Config.BootstrapAddr,
		DialPort:      r.Config.DialPort,
		CatchUp:       r.Config.CatchUp,
		Gossip:        r.Config.Gossip,
		StoreRetries:  r.Config.StoreRetries,
		Layout:        r.Config.Layout(),
		Now:           time.Now,
		Logger:        r.Config.Logger(),
	}

	r.Node = node.NewNode(conf, r.Registry, r.Ledger, r.Transport)

	if err := r.Node.Init(); err != nil {
		return fmt.Errorf("failed to initialize node: %w", err)
	}

	return nil
}

func (r *Relay) initService() error {
	if !r.Config.NoService {
		r.Service = service.NewService(r.Config.ServiceAddr, r.Node, r.Config.Logger())
	}
	return nil
}

// Init initialises the relay based on its configuration. It validates the
// configuration, opens the store and seeds the notary roster before creating
// the transport, the node and the service.
func (r *Relay) Init() error {
	if err := r.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := r.initStore(); err != nil {
		return err
	}

	if err := r.initRest(); err != nil {
		r.Store.Close()
		return err
	}

	return nil
}

func (r *Relay) initRest() error {
	if err := r.initRegistry(); err != nil {
		return err
	}

	if err := r.initLedger(); err != nil {
		return err
	}

	if err := r.initTransport(); err != nil {
		return err
	}

	if err := r.initNode(); err != nil {
		return err
	}

	if err := r.initService(); err != nil {
		return err
	}

	return nil
}

// Run starts the service in the background and runs the node. It blocks
// until the node shuts down.
func (r *Relay) Run() {
	if r.Service != nil {
		go r.Service.Serve()
	}

	r.Node.Run()

	r.closeAll()
}

// Shutdown stops the node. Run returns once the node has stopped.
func (r *Relay) Shutdown() {
	if r.Node != nil {
		r.Node.Shutdown()
	}
}

func (r *Relay) closeAll() {
	if r.Service != nil {
		ctx, cancel := context.WithTimeout(context.Background(), serviceShutdownTimeout)
		defer cancel()

		if err := r.Service.Shutdown(ctx); err != nil {
			r.Config.Logger().WithError(err).Warn("Stopping service")
		}
	}

	if err := r.Store.Close(); err != nil {
		r.Config.Logger().WithError(err).Warn("Closing store")
	}
}

// Keygen generates a new key pair and writes it to the data directory. It
// refuses to overwrite an existing key.
func Keygen(conf *config.Config) (*ecdsa.PrivateKey, error) {
	privKey, err := keys.GenerateECDSAKey()
	if err != nil {
		return nil, err
	}

	if err := keys.NewSimpleKeyfile(conf.Keyfile()).WriteKey(privKey); err != nil {
		if errors.Is(err, keys.ErrKeyExists) {
			return nil, fmt.Errorf("another key already lives under %s: %w", conf.DataDir, err)
		}
		return nil, err
	}

	pub := keys.PublicKeyHex(&privKey.PublicKey)

	if err := os.WriteFile(conf.PubKeyfile(), []byte(pub), 0600); err != nil {
		return nil, err
	}

	return privKey, nil
}
