package commands

import (
	"fmt"
	"time"

	"github.com/dpowrelay/relay/src/config"
	"github.com/dpowrelay/relay/src/crypto/keys"
	"github.com/dpowrelay/relay/src/net"
	"github.com/dpowrelay/relay/src/relay"
	"github.com/dpowrelay/relay/src/wire"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type announceFlags struct {
	dataDir      string
	peer         string
	sender       int
	myAddress    string
	addrs        []string
	symbol       string
	height       uint32
	addrCapacity int
	delay        time.Duration
}

var _announce = announceFlags{
	dataDir:      _config.Relay.DataDir,
	peer:         "tcp://127.0.0.1:13344",
	symbol:       "KMD",
	addrCapacity: _config.Relay.AddrCapacity,
	delay:        500 * time.Millisecond,
}

// NewAnnounceCmd returns the command that seals and sends a gossip packet
// advertising an address, as a notary would.
func NewAnnounceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Send a signed address announcement to a peer",
		RunE:  announce,
	}

	AddAnnounceFlags(cmd)

	return cmd
}

//AddAnnounceFlags adds flags to the announce command
func AddAnnounceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&_announce.dataDir, "datadir", _announce.dataDir, "Directory containing priv_key")
	cmd.Flags().StringVarP(&_announce.peer, "peer", "p", _announce.peer, "Endpoint of the relay to send to")
	cmd.Flags().IntVar(&_announce.sender, "sender", _announce.sender, "Notary index of the sender")
	cmd.Flags().StringVar(&_announce.myAddress, "myaddr", _announce.myAddress, "IPv4 address the sender is reachable at")
	cmd.Flags().StringSliceVar(&_announce.addrs, "addrs", _announce.addrs, "IPv4 addresses of other notaries")
	cmd.Flags().StringVar(&_announce.symbol, "symbol", _announce.symbol, "Coin symbol")
	cmd.Flags().Uint32Var(&_announce.height, "height", _announce.height, "Block height")
	cmd.Flags().IntVar(&_announce.addrCapacity, "addr-capacity", _announce.addrCapacity, "Address slots per message")
	cmd.Flags().DurationVar(&_announce.delay, "delay", _announce.delay, "Time given to the bus to connect and flush")
}

func announce(cmd *cobra.Command, args []string) error {
	conf := config.NewDefaultConfig()
	conf.SetDataDir(_announce.dataDir)

	logger := conf.Logger()

	key, err := keys.NewSimpleKeyfile(conf.Keyfile()).ReadKey()
	if err != nil {
		return fmt.Errorf("Reading private key: %s", err)
	}

	a := &relay.Announcement{
		Sender: _announce.sender,
		Symbol: _announce.symbol,
		Height: _announce.height,
	}

	if _announce.myAddress != "" {
		if a.MyAddress, err = wire.ParseAddress(_announce.myAddress); err != nil {
			return err
		}
	}

	for _, s := range _announce.addrs {
		addr, err := wire.ParseAddress(s)
		if err != nil {
			return err
		}
		a.Addrs = append(a.Addrs, addr)
	}

	frame, err := a.SealFrame(wire.Layout{AddrCapacity: _announce.addrCapacity}, key)
	if err != nil {
		return err
	}

	trans, err := net.NewBusTransport(0, logger)
	if err != nil {
		return err
	}
	defer trans.Close()

	if err := trans.Dial(_announce.peer); err != nil {
		return err
	}

	// dials complete in the background
	time.Sleep(_announce.delay)

	if err := trans.Send(frame); err != nil {
		return err
	}

	time.Sleep(_announce.delay)

	logger.WithFields(logrus.Fields{
		"peer":   _announce.peer,
		"sender": a.Sender,
		"bytes":  len(frame),
		"pubkey": keys.PublicKeyHex(&key.PublicKey),
	}).Info("Announcement sent")

	return nil
}
