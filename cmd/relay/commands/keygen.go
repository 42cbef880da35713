package commands

import (
	"fmt"

	"github.com/dpowrelay/relay/src/config"
	"github.com/dpowrelay/relay/src/relay"
	"github.com/spf13/cobra"
)

var keygenDataDir string

// NewKeygenCmd produces a KeygenCmd which create a key pair
func NewKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create new key pair",
		RunE:  keygen,
	}

	AddKeygenFlags(cmd)

	return cmd
}

//AddKeygenFlags adds flags to the keygen command
func AddKeygenFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&keygenDataDir, "datadir", _config.Relay.DataDir, "Directory where the key pair will be written")
}

func keygen(cmd *cobra.Command, args []string) error {
	conf := config.NewDefaultConfig()
	conf.SetDataDir(keygenDataDir)

	if _, err := relay.Keygen(conf); err != nil {
		return fmt.Errorf("Writing key pair: %s", err)
	}

	fmt.Printf("Your private key has been saved to: %s\n", conf.Keyfile())
	fmt.Printf("Your public key has been saved to: %s\n", conf.PubKeyfile())

	return nil
}
