package wire

import (
	"iter"
)

// Frame is one header and its payload as sliced off the byte stream.
type Frame struct {
	Header  *PacketHeader
	Payload []byte
}

// Message decodes the Message at the start of the payload.
func (f *Frame) Message(layout Layout) (*Message, error) {
	if len(f.Payload) < layout.MessageSize() {
		return nil, ErrShortPayload
	}
	return DecodeMessage(f.Payload, layout)
}

// Data returns the channel-specific bytes following the Message, bounded by
// both msg.DataLen and the end of the payload.
func (f *Frame) Data(msg *Message, layout Layout) []byte {
	start := layout.MessageSize()
	if start >= len(f.Payload) {
		return nil
	}
	end := start + int(msg.DataLen)
	if end > len(f.Payload) || end < start {
		end = len(f.Payload)
	}
	return f.Payload[start:end]
}

// FrameReader accumulates bytes delivered by a transport and yields complete
// frames in arrival order. A FrameReader belongs to a single connection and
// is not safe for concurrent use.
type FrameReader struct {
	buf []byte
}

// NewFrameReader ...
func NewFrameReader() *FrameReader {
	return &FrameReader{}
}

// Feed appends b to the internal buffer.
func (r *FrameReader) Feed(b []byte) {
	r.buf = append(r.buf, b...)
}

// Buffered returns the number of bytes not yet consumed.
func (r *FrameReader) Buffered() int {
	return len(r.buf)
}

// Reset drops any buffered bytes.
func (r *FrameReader) Reset() {
	r.buf = r.buf[:0]
}

// Next returns the next complete frame. When the buffer does not hold a
// whole frame yet it returns a *FramingError and consumes nothing. A header
// declaring more than MaxPacketLen bytes yields ErrOversizedFrame and the
// buffer is discarded.
func (r *FrameReader) Next() (*Frame, error) {
	h, err := DecodeHeader(r.buf)
	if err != nil {
		return nil, err
	}

	if h.PacketLen > MaxPacketLen {
		r.Reset()
		return nil, ErrOversizedFrame
	}

	total := HeaderSize + int(h.PacketLen)
	if err := needBytes("frame", total, len(r.buf)); err != nil {
		return nil, err
	}

	payload := make([]byte, h.PacketLen)
	copy(payload, r.buf[HeaderSize:total])

	r.buf = append(r.buf[:0], r.buf[total:]...)

	return &Frame{Header: h, Payload: payload}, nil
}

// Frames returns a lazy sequence over the buffered frames. Iteration stops
// silently when more data is needed; any other error is yielded once and
// ends the sequence.
func (r *FrameReader) Frames() iter.Seq2[*Frame, error] {
	return func(yield func(*Frame, error) bool) {
		for {
			f, err := r.Next()
			if err != nil {
				if !IsFraming(err) {
					yield(nil, err)
				}
				return
			}
			if !yield(f, nil) {
				return
			}
		}
	}
}

// EncodeFrame concatenates the header and payload into a frame.
func EncodeFrame(h *PacketHeader, payload []byte) ([]byte, error) {
	b, err := h.AppendBinary(make([]byte, 0, HeaderSize+len(payload)))
	if err != nil {
		return nil, err
	}
	return append(b, payload...), nil
}
