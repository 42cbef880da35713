package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dpowrelay/relay/src/common"
	"github.com/dpowrelay/relay/src/wire"
	"github.com/sirupsen/logrus"
)

func TestDefaultConfigValidates(t *testing.T) {
	conf := NewTestConfig(t, common.TestLogLevel)
	conf.SetDataDir(t.TempDir())

	if err := conf.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	if conf.Layout() != (wire.Layout{AddrCapacity: wire.MainnetAddrCapacity}) {
		t.Fatalf("default layout should have %d slots", wire.MainnetAddrCapacity)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
	}{
		{"no datadir", func(c *Config) { c.DataDir = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"no listen", func(c *Config) { c.BindAddr = "" }},
		{"port zero", func(c *Config) { c.DialPort = 0 }},
		{"port overflow", func(c *Config) { c.DialPort = 70000 }},
		{"zero capacity", func(c *Config) { c.AddrCapacity = 0 }},
		{"negative retries", func(c *Config) { c.StoreRetries = -1 }},
		{"service without address", func(c *Config) { c.ServiceAddr = "" }},
		{"store without db", func(c *Config) { c.DatabaseDir = "" }},
	}

	for _, tc := range cases {
		conf := NewTestConfig(t, common.TestLogLevel)
		conf.SetDataDir(t.TempDir())
		tc.edit(conf)
		if err := conf.Validate(); err == nil {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
	}

	conf := NewTestConfig(t, common.TestLogLevel)
	conf.SetDataDir(t.TempDir())
	conf.NoService = true
	conf.ServiceAddr = ""
	conf.Store = false
	conf.DatabaseDir = ""
	if err := conf.Validate(); err != nil {
		t.Fatalf("service and db addresses are optional when disabled: %v", err)
	}
}

func TestSetDataDir(t *testing.T) {
	conf := NewDefaultConfig()
	conf.SetDataDir("/tmp/relay")

	if conf.DatabaseDir != filepath.Join("/tmp/relay", DefaultBadgerFile) {
		t.Fatalf("default db dir should follow the datadir, got %s", conf.DatabaseDir)
	}
	if conf.Keyfile() != filepath.Join("/tmp/relay", DefaultKeyfile) {
		t.Fatalf("unexpected keyfile %s", conf.Keyfile())
	}

	conf.DatabaseDir = "/var/db"
	conf.SetDataDir("/tmp/other")
	if conf.DatabaseDir != "/var/db" {
		t.Fatalf("an explicit db dir should be kept, got %s", conf.DatabaseDir)
	}
}

func TestLoggerWritesLogFile(t *testing.T) {
	conf := NewDefaultConfig()
	conf.LogFile = filepath.Join(t.TempDir(), "relay.log")
	conf.LogLevel = "info"

	conf.Logger().WithField("notary", "blackice_DEV").Info("hello")

	b, err := os.ReadFile(conf.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) == 0 {
		t.Fatalf("log file should not be empty")
	}

	if conf.Logger().Data["prefix"] != "relay" {
		t.Fatalf("entries should carry the relay prefix")
	}
}

func TestLogLevel(t *testing.T) {
	if LogLevel("warn") != logrus.WarnLevel || LogLevel("bogus") != logrus.DebugLevel {
		t.Fatalf("unexpected level parsing")
	}
}
