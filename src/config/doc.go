// Package config defines the configuration for a relay.
//
// Regardless of how the relay is started, directly from Go code or as a
// standalone process from the command line, it uses the Config object defined
// in this package to store and forward configuration options. On top of these
// options, the relay relies on a data directory, defined by Config.DataDir,
// where it expects to find a few additional files:
//
//  priv_key   // (optional) raw hex private key used by announce (cf. relay keygen)
//  key.pub    // (optional) hex public key matching priv_key
//  relay.toml // (optional) configuration file, any format supported by viper
//  badger_db/ // database directory when the store is enabled
package config
