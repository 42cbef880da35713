package wire

// PacketHeader precedes every payload on the bus. Sig is a compact secp256k1
// signature of PacketHash, and PacketHash binds Nonce, PacketLen and the
// payload.
type PacketHeader struct {
	Sig        [64]byte
	PacketHash [32]byte
	Nonce      uint32
	PacketLen  uint32
}

// DecodeHeader decodes a PacketHeader from the first HeaderSize bytes of b.
func DecodeHeader(b []byte) (*PacketHeader, error) {
	if err := needBytes("header", HeaderSize, len(b)); err != nil {
		return nil, err
	}

	h := new(PacketHeader)
	d := &decoder{b: b}
	d.bytes(h.Sig[:])
	d.bytes(h.PacketHash[:])
	h.Nonce = d.u32()
	h.PacketLen = d.u32()

	return h, nil
}

// AppendBinary appends the encoded header to b.
func (h *PacketHeader) AppendBinary(b []byte) ([]byte, error) {
	e := &encoder{b: b}
	e.bytes(h.Sig[:])
	e.bytes(h.PacketHash[:])
	e.u32(h.Nonce)
	e.u32(h.PacketLen)
	return e.b, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h *PacketHeader) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *PacketHeader) UnmarshalBinary(b []byte) error {
	dec, err := DecodeHeader(b)
	if err != nil {
		return err
	}
	*h = *dec
	return nil
}
