package wire

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the size of an encoded PacketHeader.
	HeaderSize = 64 + 32 + 4 + 4

	// UtxoSize is the size of an encoded UtxoRecord.
	UtxoSize = 32 + 32 + 8 + 8 + 4 + 4 + 4 + 2 + 2 + 128 + 128 + 2 + 1 + 1

	// messageFixedSize counts the Message bytes that do not depend on the
	// address capacity, including the trailing version byte.
	messageFixedSize = 32 + 32 + 2*UtxoSize + 5*4 + 4 + 4 + 16 + 1 + 1 + 1

	// MainnetAddrCapacity is the address-list capacity of mainnet and
	// third-party networks.
	MainnetAddrCapacity = 512

	// LegacyAddrCapacity is the address-list capacity of older networks.
	LegacyAddrCapacity = 128

	// MaxPacketLen bounds the payload a header may declare.
	MaxPacketLen = 1 << 20

	structAlign = 4
)

// Layout carries the network-dependent parameters of the Message structure.
type Layout struct {
	// AddrCapacity is the number of 4-byte slots of the address list.
	AddrCapacity int
}

// DefaultLayout returns the mainnet Layout.
func DefaultLayout() Layout {
	return Layout{AddrCapacity: MainnetAddrCapacity}
}

// Validate checks that the Layout is usable.
func (l Layout) Validate() error {
	if l.AddrCapacity <= 0 {
		return fmt.Errorf("invalid address capacity %d", l.AddrCapacity)
	}
	return nil
}

// StructSize is sizeof() of the C Message structure, trailing alignment
// included.
func (l Layout) StructSize() int {
	n := messageFixedSize + 4*l.AddrCapacity
	if r := n % structAlign; r != 0 {
		n += structAlign - r
	}
	return n
}

// MessageSize is the number of Message bytes carried on the wire, which is
// one less than StructSize.
func (l Layout) MessageSize() int {
	return l.StructSize() - 1
}

// decoder reads little-endian fields from a buffer that has already been
// length-checked.
type decoder struct {
	b   []byte
	off int
}

func (d *decoder) bytes(dst []byte) {
	d.off += copy(dst, d.b[d.off:d.off+len(dst)])
}

func (d *decoder) u8() uint8 {
	v := d.b[d.off]
	d.off++
	return v
}

func (d *decoder) u16() uint16 {
	v := binary.LittleEndian.Uint16(d.b[d.off:])
	d.off += 2
	return v
}

func (d *decoder) u32() uint32 {
	v := binary.LittleEndian.Uint32(d.b[d.off:])
	d.off += 4
	return v
}

// encoder appends little-endian fields to a buffer.
type encoder struct {
	b []byte
}

func (e *encoder) bytes(src []byte) {
	e.b = append(e.b, src...)
}

func (e *encoder) u8(v uint8) {
	e.b = append(e.b, v)
}

func (e *encoder) u16(v uint16) {
	e.b = binary.LittleEndian.AppendUint16(e.b, v)
}

func (e *encoder) u32(v uint32) {
	e.b = binary.LittleEndian.AppendUint32(e.b, v)
}
