package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/dpowrelay/relay/src/common"
	"github.com/dpowrelay/relay/src/net"
	"github.com/dpowrelay/relay/src/wire"
	"github.com/go-playground/validator/v10"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultKeyfile is the default name of the file containing the private
	// key used to seal announcements
	DefaultKeyfile = "priv_key"

	// DefaultPubKeyfile is the default name of the file containing the hex
	// encoded public key
	DefaultPubKeyfile = "key.pub"

	// DefaultBadgerFile is the default name of the folder containing the Badger
	// database
	DefaultBadgerFile = "badger_db"

	// DefaultConfigName is the base name of the optional configuration file
	// in the data directory (relay.toml, relay.yaml, relay.json...)
	DefaultConfigName = "relay"
)

// Default configuration values.
const (
	DefaultLogLevel     = "info"
	DefaultBindAddr     = "tcp://0.0.0.0:13344"
	DefaultServiceAddr  = "127.0.0.1:8000"
	DefaultDialPort     = 13344
	DefaultAddrCapacity = wire.MainnetAddrCapacity
	DefaultCatchUp      = false
	DefaultGossip       = true
	DefaultStoreRetries = 2
	DefaultRecvTimeout  = 0 * time.Second
	DefaultStore        = true
	DefaultNoService    = false
)

// Config contains all the configuration properties of a relay.
type Config struct {
	// DataDir is the top-level directory containing the relay configuration
	// and data
	DataDir string `mapstructure:"datadir" validate:"required"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log" validate:"oneof=debug info warn error fatal panic"`

	// LogFile, when set, receives a copy of every log entry in JSON.
	LogFile string `mapstructure:"log-file"`

	// BindAddr is the bus endpoint where this relay listens for other
	// notaries, e.g. tcp://0.0.0.0:13344.
	BindAddr string `mapstructure:"listen" validate:"required"`

	// AdvertiseAddr is the endpoint through which other notaries reach us.
	// Gossiped addresses resolving to it are never dialed.
	AdvertiseAddr string `mapstructure:"advertise"`

	// BootstrapAddr is the endpoint of a peer dialed at startup.
	BootstrapAddr string `mapstructure:"bootstrap"`

	// DialPort is the port appended to gossiped addresses.
	DialPort int `mapstructure:"dial-port" validate:"min=1,max=65535"`

	// AddrCapacity is the number of address slots in a message: 512 on
	// mainnet, 128 on some legacy networks.
	AddrCapacity int `mapstructure:"addr-capacity" validate:"min=1"`

	// CatchUp dials every known address at startup.
	CatchUp bool `mapstructure:"catch-up"`

	// Gossip is the initial state of dial-on-discovery. It can be switched
	// at runtime through the service.
	Gossip bool `mapstructure:"gossip"`

	// StoreRetries is the number of extra attempts for a failed store write.
	StoreRetries int `mapstructure:"store-retries" validate:"min=0"`

	// RecvTimeout bounds a single transport read. Zero blocks forever.
	RecvTimeout time.Duration `mapstructure:"recv-timeout" validate:"min=0"`

	// NoService disables the HTTP service.
	NoService bool `mapstructure:"no-service"`

	// ServiceAddr is the address:port of the HTTP service.
	ServiceAddr string `mapstructure:"service-listen" validate:"required_unless=NoService true"`

	// Store activates persistent storage.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing database files.
	DatabaseDir string `mapstructure:"db" validate:"required_if=Store true"`

	// Transport, when set, is used instead of a nanomsg bus.
	Transport net.Transport `mapstructure:"-" validate:"-"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:      DefaultDataDir(),
		LogLevel:     DefaultLogLevel,
		BindAddr:     DefaultBindAddr,
		ServiceAddr:  DefaultServiceAddr,
		DialPort:     DefaultDialPort,
		AddrCapacity: DefaultAddrCapacity,
		CatchUp:      DefaultCatchUp,
		Gossip:       DefaultGossip,
		StoreRetries: DefaultStoreRetries,
		RecvTimeout:  DefaultRecvTimeout,
		NoService:    DefaultNoService,
		Store:        DefaultStore,
		DatabaseDir:  DefaultDatabaseDir(),
	}

	return config
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// Validate checks the struct tags of the configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// SetDataDir sets the top-level directory, and updates the database
// directory if it is currently set to the default value. If the database
// directory is not currently the default, it means the user has explicitely set
// it to something else, so avoid changing it again here.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	if c.DatabaseDir == DefaultDatabaseDir() {
		c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
	}
}

// Keyfile returns the full path of the file containing the private key.
func (c *Config) Keyfile() string {
	return filepath.Join(c.DataDir, DefaultKeyfile)
}

// PubKeyfile returns the full path of the file containing the public key.
func (c *Config) PubKeyfile() string {
	return filepath.Join(c.DataDir, DefaultPubKeyfile)
}

// Layout returns the message layout matching AddrCapacity.
func (c *Config) Layout() wire.Layout {
	return wire.Layout{AddrCapacity: c.AddrCapacity}
}

// Logger returns a formatted logrus Entry, with prefix set to "relay".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			pathMap := lfshook.PathMap{}
			for _, l := range logrus.AllLevels {
				pathMap[l] = c.LogFile
			}
			c.logger.Hooks.Add(lfshook.NewHook(pathMap, &logrus.JSONFormatter{}))
		}
	}
	return c.logger.WithField("prefix", "relay")
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir return the default directory name for top-level relay
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Relay")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Relay")
		} else {
			return filepath.Join(home, ".relay")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
