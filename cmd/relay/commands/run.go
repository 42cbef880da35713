package commands

import (
	"github.com/dpowrelay/relay/src/config"
	"github.com/dpowrelay/relay/src/relay"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//NewRunCmd returns the command that starts a relay
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run relay",
		PreRunE: loadConfig,
		RunE:    runRelay,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runRelay(cmd *cobra.Command, args []string) error {
	engine := relay.NewRelay(&_config.Relay)

	if err := engine.Init(); err != nil {
		_config.Relay.Logger().WithError(err).Error("Cannot initialize engine")
		return err
	}

	engine.Run()

	return nil
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {

	cmd.Flags().String("datadir", _config.Relay.DataDir, "Top-level directory for configuration and data")
	cmd.Flags().String("log", _config.Relay.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", _config.Relay.LogFile, "Also write JSON logs to this file")

	// Network
	cmd.Flags().StringP("listen", "l", _config.Relay.BindAddr, "Listen endpoint of the bus socket")
	cmd.Flags().StringP("advertise", "a", _config.Relay.AdvertiseAddr, "Endpoint through which other notaries reach this relay")
	cmd.Flags().StringP("bootstrap", "b", _config.Relay.BootstrapAddr, "Endpoint of a peer to dial at startup")
	cmd.Flags().Int("dial-port", _config.Relay.DialPort, "Port appended to gossiped addresses")
	cmd.Flags().Int("addr-capacity", _config.Relay.AddrCapacity, "Address slots per message (512 mainnet, 128 legacy)")
	cmd.Flags().Duration("recv-timeout", _config.Relay.RecvTimeout, "Bus receive timeout (0 blocks)")

	// Gossip
	cmd.Flags().Bool("catch-up", _config.Relay.CatchUp, "Dial every known address at startup")
	cmd.Flags().Bool("gossip", _config.Relay.Gossip, "Dial newly discovered addresses")

	// Service
	cmd.Flags().Bool("no-service", _config.Relay.NoService, "Disable the HTTP service")
	cmd.Flags().StringP("service-listen", "s", _config.Relay.ServiceAddr, "Listen IP:Port for HTTP service")

	// Store
	cmd.Flags().Bool("store", _config.Relay.Store, "Use badgerDB instead of in-mem DB")
	cmd.Flags().String("db", _config.Relay.DatabaseDir, "Dabatabase directory")
	cmd.Flags().Int("store-retries", _config.Relay.StoreRetries, "Extra attempts for a failed store write")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	_config.Relay.SetDataDir(_config.Relay.DataDir)

	logFields := logrus.Fields{
		"relay.DataDir":       _config.Relay.DataDir,
		"relay.BindAddr":      _config.Relay.BindAddr,
		"relay.AdvertiseAddr": _config.Relay.AdvertiseAddr,
		"relay.BootstrapAddr": _config.Relay.BootstrapAddr,
		"relay.DialPort":      _config.Relay.DialPort,
		"relay.AddrCapacity":  _config.Relay.AddrCapacity,
		"relay.CatchUp":       _config.Relay.CatchUp,
		"relay.Gossip":        _config.Relay.Gossip,
		"relay.ServiceAddr":   _config.Relay.ServiceAddr,
		"relay.NoService":     _config.Relay.NoService,
		"relay.Store":         _config.Relay.Store,
		"relay.LogLevel":      _config.Relay.LogLevel,
	}

	if _config.Relay.Store {
		logFields["relay.DatabaseDir"] = _config.Relay.DatabaseDir
		logFields["relay.StoreRetries"] = _config.Relay.StoreRetries
	}

	_config.Relay.Logger().WithFields(logFields).Debug("RUN")

	return nil
}

// Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// first unmarshal to read from CLI flags
	if err := viper.Unmarshal(_config); err != nil {
		return err
	}

	// look for config file in [datadir]/relay.toml (.json, .yaml also work)
	viper.SetConfigName(config.DefaultConfigName) // name of config file (without extension)
	viper.AddConfigPath(_config.Relay.DataDir)    // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Relay.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Relay.Logger().Debugf("No config file found in: %s", _config.Relay.DataDir)
	} else {
		return err
	}

	// second unmarshal to read from config file
	return viper.Unmarshal(_config)
}
