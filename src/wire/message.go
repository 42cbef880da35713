package wire

import (
	"bytes"
	"fmt"
)

// Message is the dPoW nano message carried at the start of every payload.
// Addrs always has the Layout's capacity once decoded; NumAddrs is whatever
// the producer declared and is not trusted to bound the list.
type Message struct {
	SrcHash    [32]byte
	DestHash   [32]byte
	Ratify     UtxoRecord
	Notarize   UtxoRecord
	Channel    Channel
	Height     uint32
	Size       uint32
	DataLen    uint32
	CRC32      uint32
	MyAddress  Address
	NumAddrs   uint32
	Addrs      []Address
	Symbol     [16]byte
	SenderInd  uint8
	SenderInd2 uint8
	Version    uint8
}

// DecodeMessage decodes a Message from the first layout.MessageSize() bytes
// of b.
func DecodeMessage(b []byte, layout Layout) (*Message, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if err := needBytes("message", layout.MessageSize(), len(b)); err != nil {
		return nil, err
	}

	m := new(Message)
	d := &decoder{b: b}
	d.bytes(m.SrcHash[:])
	d.bytes(m.DestHash[:])
	m.Ratify.decode(d)
	m.Notarize.decode(d)
	m.Channel = Channel(d.u32())
	m.Height = d.u32()
	m.Size = d.u32()
	m.DataLen = d.u32()
	m.CRC32 = d.u32()
	d.bytes(m.MyAddress[:])
	m.NumAddrs = d.u32()
	m.Addrs = make([]Address, layout.AddrCapacity)
	for i := range m.Addrs {
		d.bytes(m.Addrs[i][:])
	}
	d.bytes(m.Symbol[:])
	m.SenderInd = d.u8()
	m.SenderInd2 = d.u8()
	m.Version = d.u8()

	return m, nil
}

// AppendBinary appends the wire form of m to b. Addrs shorter than the
// capacity are zero-padded.
func (m *Message) AppendBinary(b []byte, layout Layout) ([]byte, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if len(m.Addrs) > layout.AddrCapacity {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyAddrs, len(m.Addrs), layout.AddrCapacity)
	}

	e := &encoder{b: b}
	e.bytes(m.SrcHash[:])
	e.bytes(m.DestHash[:])
	m.Ratify.encode(e)
	m.Notarize.encode(e)
	e.u32(uint32(m.Channel))
	e.u32(m.Height)
	e.u32(m.Size)
	e.u32(m.DataLen)
	e.u32(m.CRC32)
	e.bytes(m.MyAddress[:])
	e.u32(m.NumAddrs)
	for _, a := range m.Addrs {
		e.bytes(a[:])
	}
	e.bytes(make([]byte, 4*(layout.AddrCapacity-len(m.Addrs))))
	e.bytes(m.Symbol[:])
	e.u8(m.SenderInd)
	e.u8(m.SenderInd2)
	e.u8(m.Version)

	return e.b, nil
}

// Encode returns the wire form of m.
func (m *Message) Encode(layout Layout) ([]byte, error) {
	return m.AppendBinary(make([]byte, 0, layout.MessageSize()), layout)
}

// SymbolString returns the symbol tag without its zero padding.
func (m *Message) SymbolString() string {
	if i := bytes.IndexByte(m.Symbol[:], 0); i >= 0 {
		return string(m.Symbol[:i])
	}
	return string(m.Symbol[:])
}

// SetSymbol stores s as a zero-padded symbol tag, truncated to 16 bytes.
func (m *Message) SetSymbol(s string) {
	m.Symbol = [16]byte{}
	copy(m.Symbol[:], s)
}
