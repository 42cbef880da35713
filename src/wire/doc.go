// Package wire implements the binary codec of the dPoW gossip protocol.
//
// Notaries exchange frames over a nanomsg bus. A frame is a fixed 104-byte
// PacketHeader followed by PacketLen bytes of payload:
//
//  sig[64] | packethash[32] | nonce:u32 | packetlen:u32 | payload[packetlen]
//
// The payload starts with a Message, a C structure serialised field by field
// with no padding and little-endian integers, followed by DataLen bytes whose
// interpretation depends on the Message channel tag.
//
// Message Size
//
// The Message embeds a zero-padded list of IPv4 addresses whose capacity is
// network dependent (128 on older networks, 512 on mainnet and third-party
// networks). The capacity is carried by a Layout value rather than a constant
// so that one binary can serve several network generations.
//
// Producers transmit sizeof(struct) - 1 bytes for the Message: the trailing
// alignment byte of the C structure is never sent. With a capacity of N
// addresses the declared structure is 824 + 4N bytes and the wire carries
// 823 + 4N. This quirk is part of the protocol and is reproduced exactly.
//
// Framing
//
// FrameReader slices frames off an accumulating byte stream. When not enough
// bytes are buffered for the next frame it returns a *FramingError and leaves
// the buffer untouched so the caller can feed more data and retry.
package wire
