package wire

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func sampleFrame(t *testing.T, payload []byte, nonce uint32) []byte {
	h := &PacketHeader{Nonce: nonce, PacketLen: uint32(len(payload))}
	fill(h.Sig[:], 0x40)
	fill(h.PacketHash[:], 0x80)

	b, err := EncodeFrame(h, payload)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestHeaderRoundTrip(t *testing.T) {
	h := &PacketHeader{Nonce: 9999, PacketLen: 0x01020304}
	fill(h.Sig[:], 1)
	fill(h.PacketHash[:], 2)

	b, err := h.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != HeaderSize {
		t.Fatalf("header should be %d bytes, not %d", HeaderSize, len(b))
	}
	if !bytes.Equal(b[100:104], []byte{4, 3, 2, 1}) {
		t.Fatalf("packetlen should be little-endian, got %v", b[100:104])
	}

	var dec PacketHeader
	if err := dec.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*h, dec) {
		t.Fatalf("decoded header does not match")
	}
}

func TestDecodeHeaderShort(t *testing.T) {
	_, err := DecodeHeader(make([]byte, HeaderSize-1))
	if !IsFraming(err) {
		t.Fatalf("expected a framing error, got %v", err)
	}
}

func TestFrameReaderPartialFeeds(t *testing.T) {
	frame := sampleFrame(t, []byte("hello world"), 3)

	r := NewFrameReader()
	r.Feed(frame[:50])
	if _, err := r.Next(); !IsFraming(err) {
		t.Fatalf("half a header should be a framing error, got %v", err)
	}

	r.Feed(frame[50:110])
	if _, err := r.Next(); !IsFraming(err) {
		t.Fatalf("truncated payload should be a framing error, got %v", err)
	}
	if r.Buffered() != 110 {
		t.Fatalf("framing errors must not consume bytes, buffered %d", r.Buffered())
	}

	r.Feed(frame[110:])
	f, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(f.Payload) != "hello world" || f.Header.Nonce != 3 {
		t.Fatalf("unexpected frame %+v", f)
	}
	if r.Buffered() != 0 {
		t.Fatalf("buffer should be drained, %d bytes left", r.Buffered())
	}
}

func TestFrameReaderSequence(t *testing.T) {
	var stream []byte
	for i := 0; i < 3; i++ {
		stream = append(stream, sampleFrame(t, []byte{byte(i), byte(i)}, uint32(i))...)
	}
	partial := sampleFrame(t, []byte("tail"), 99)
	stream = append(stream, partial[:20]...)

	r := NewFrameReader()
	r.Feed(stream)

	var got []uint32
	for f, err := range r.Frames() {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, f.Header.Nonce)
	}
	if !reflect.DeepEqual(got, []uint32{0, 1, 2}) {
		t.Fatalf("frames should come out in order, got %v", got)
	}
	if r.Buffered() != 20 {
		t.Fatalf("partial frame should stay buffered, have %d", r.Buffered())
	}

	r.Reset()
	if r.Buffered() != 0 {
		t.Fatalf("reset should drop buffered bytes")
	}
}

func TestFrameReaderOversized(t *testing.T) {
	h := &PacketHeader{PacketLen: MaxPacketLen + 1}
	b, _ := h.MarshalBinary()

	r := NewFrameReader()
	r.Feed(b)

	var seen error
	for _, err := range r.Frames() {
		seen = err
	}
	if !errors.Is(seen, ErrOversizedFrame) {
		t.Fatalf("expected ErrOversizedFrame, got %v", seen)
	}
	if r.Buffered() != 0 {
		t.Fatalf("oversized frame should discard the buffer")
	}
}

func TestFrameMessageAndData(t *testing.T) {
	layout := Layout{AddrCapacity: LegacyAddrCapacity}
	m := sampleMessage(layout)
	m.DataLen = 4

	payload, err := m.Encode(layout)
	if err != nil {
		t.Fatal(err)
	}
	payload = append(payload, 0xaa, 0xbb, 0xcc, 0xdd, 0xee)

	f := &Frame{Header: &PacketHeader{PacketLen: uint32(len(payload))}, Payload: payload}
	dec, err := f.Message(layout)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Height != m.Height {
		t.Fatalf("height should be %d, not %d", m.Height, dec.Height)
	}
	if !bytes.Equal(f.Data(dec, layout), []byte{0xaa, 0xbb, 0xcc, 0xdd}) {
		t.Fatalf("unexpected data %x", f.Data(dec, layout))
	}

	dec.DataLen = 1000
	if len(f.Data(dec, layout)) != 5 {
		t.Fatalf("data should be bounded by the payload")
	}

	short := &Frame{Payload: payload[:10]}
	if _, err := short.Message(layout); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("expected ErrShortPayload, got %v", err)
	}
}
