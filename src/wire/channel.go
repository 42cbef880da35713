package wire

import "fmt"

// Channel routes a Message payload to its interpretation.
type Channel uint32

func tag(s string) Channel {
	return Channel(uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24)
}

// Channel tags are the little-endian ASCII words "sigs" and "txid", and their
// bitwise complements for the BTC side of a notarization.
var (
	ChannelSigs    = tag("sigs")
	ChannelSigsBTC = ^ChannelSigs
	ChannelTxid    = tag("txid")
	ChannelTxidBTC = ^ChannelTxid
)

// Known reports whether c is one of the four protocol channels.
func (c Channel) Known() bool {
	switch c {
	case ChannelSigs, ChannelSigsBTC, ChannelTxid, ChannelTxidBTC:
		return true
	}
	return false
}

// String ...
func (c Channel) String() string {
	switch c {
	case ChannelSigs:
		return "sigs"
	case ChannelSigsBTC:
		return "sigs-btc"
	case ChannelTxid:
		return "txid"
	case ChannelTxidBTC:
		return "txid-btc"
	default:
		return fmt.Sprintf("unknown(%#08x)", uint32(c))
	}
}
