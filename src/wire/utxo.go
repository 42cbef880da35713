package wire

// UtxoRecord references a ratification or notarization unspent output,
// together with the signature material the notaries are collecting for it.
type UtxoRecord struct {
	SrcUtxo     [32]byte
	DestUtxo    [32]byte
	BestMask    [8]byte
	RecvMask    [8]byte
	PendingCRC1 uint32
	PendingCRC2 uint32
	PaxWdCRC    uint32
	SrcVout     uint16
	DestVout    uint16
	Sig1        [128]byte
	Sig2        [128]byte
	SigLens     [2]byte
	Pad         uint8
	BestK       uint8
}

func (u *UtxoRecord) decode(d *decoder) {
	d.bytes(u.SrcUtxo[:])
	d.bytes(u.DestUtxo[:])
	d.bytes(u.BestMask[:])
	d.bytes(u.RecvMask[:])
	u.PendingCRC1 = d.u32()
	u.PendingCRC2 = d.u32()
	u.PaxWdCRC = d.u32()
	u.SrcVout = d.u16()
	u.DestVout = d.u16()
	d.bytes(u.Sig1[:])
	d.bytes(u.Sig2[:])
	d.bytes(u.SigLens[:])
	u.Pad = d.u8()
	u.BestK = d.u8()
}

func (u *UtxoRecord) encode(e *encoder) {
	e.bytes(u.SrcUtxo[:])
	e.bytes(u.DestUtxo[:])
	e.bytes(u.BestMask[:])
	e.bytes(u.RecvMask[:])
	e.u32(u.PendingCRC1)
	e.u32(u.PendingCRC2)
	e.u32(u.PaxWdCRC)
	e.u16(u.SrcVout)
	e.u16(u.DestVout)
	e.bytes(u.Sig1[:])
	e.bytes(u.Sig2[:])
	e.bytes(u.SigLens[:])
	e.u8(u.Pad)
	e.u8(u.BestK)
}
