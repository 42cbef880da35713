package commands

import (
	"github.com/dpowrelay/relay/src/config"
)

//CLIConfig contains configuration for the Run command
type CLIConfig struct {
	Relay config.Config `mapstructure:",squash"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Relay: *config.NewDefaultConfig(),
	}
}
