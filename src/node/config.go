package node

import (
	"testing"
	"time"

	"github.com/dpowrelay/relay/src/common"
	"github.com/dpowrelay/relay/src/wire"
	"github.com/sirupsen/logrus"
)

// DefaultStoreRetries is the number of extra attempts made for a failed
// store write before it is skipped.
const DefaultStoreRetries = 2

// DefaultDialPort is the port every notary listens on.
const DefaultDialPort = 13344

// Config holds the settings of the connection loop.
type Config struct {
	// BindAddr is the bus endpoint bound at startup, e.g. tcp://0.0.0.0:13344.
	BindAddr string
	// AdvertiseAddr is the endpoint through which other notaries reach us.
	AdvertiseAddr string
	// BootstrapAddr is dialed once at startup when set.
	BootstrapAddr string
	// DialPort is appended to gossiped addresses.
	DialPort int
	// CatchUp dials the whole known pool at startup.
	CatchUp bool
	// Gossip is the initial value of the dial-on-discovery toggle.
	Gossip bool
	// StoreRetries is the number of extra attempts for a failed store write.
	StoreRetries int
	// Layout is the message layout of the network.
	Layout wire.Layout
	// Now returns the time recorded as last-seen.
	Now    func() time.Time
	Logger *logrus.Entry
}

// DefaultConfig ...
func DefaultConfig() *Config {
	logger := logrus.New()
	logger.Level = logrus.DebugLevel

	return &Config{
		BindAddr:     "tcp://0.0.0.0:13344",
		DialPort:     DefaultDialPort,
		Gossip:       true,
		StoreRetries: DefaultStoreRetries,
		Layout:       wire.DefaultLayout(),
		Now:          time.Now,
		Logger:       logrus.NewEntry(logger),
	}
}

// TestConfig returns a DefaultConfig logging through t.
func TestConfig(t testing.TB) *Config {
	config := DefaultConfig()
	config.Logger = common.NewTestEntry(t, common.TestLogLevel)
	return config
}
