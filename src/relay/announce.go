package relay

import (
	"crypto/ecdsa"

	"github.com/dpowrelay/relay/src/auth"
	"github.com/dpowrelay/relay/src/notary"
	"github.com/dpowrelay/relay/src/wire"
)

// Announcement describes a gossip packet advertising where a notary can be
// reached and which other notaries it knows about.
type Announcement struct {
	Sender    int
	MyAddress wire.Address
	Addrs     []wire.Address
	Symbol    string
	Height    uint32
	Version   uint8
}

// Message builds the dPoW message carrying the announcement.
func (a *Announcement) Message() (*wire.Message, error) {
	if err := notary.CheckSender(a.Sender); err != nil {
		return nil, err
	}

	msg := &wire.Message{
		Channel:    wire.ChannelSigs,
		Height:     a.Height,
		MyAddress:  a.MyAddress,
		NumAddrs:   uint32(len(a.Addrs)),
		Addrs:      a.Addrs,
		SenderInd:  uint8(a.Sender),
		SenderInd2: uint8(a.Sender),
		Version:    a.Version,
	}
	msg.SetSymbol(a.Symbol)

	return msg, nil
}

// SealFrame encodes the announcement with layout, grinds and signs it with
// key, and returns the complete frame ready to be sent on the bus.
func (a *Announcement) SealFrame(layout wire.Layout, key *ecdsa.PrivateKey) ([]byte, error) {
	msg, err := a.Message()
	if err != nil {
		return nil, err
	}

	payload, err := msg.Encode(layout)
	if err != nil {
		return nil, err
	}

	header, err := auth.Seal(payload, key)
	if err != nil {
		return nil, err
	}

	return wire.EncodeFrame(header, payload)
}
