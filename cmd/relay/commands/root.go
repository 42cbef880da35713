package commands

import (
	"github.com/spf13/cobra"
)

var (
	_config = NewDefaultCLIConfig()
)

//RootCmd is the root command for the relay
var RootCmd = &cobra.Command{
	Use:              "relay",
	Short:            "dPoW notary relay",
	TraverseChildren: true,
}
