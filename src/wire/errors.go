package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrOversizedFrame is returned when a header declares a payload larger
	// than MaxPacketLen.
	ErrOversizedFrame = errors.New("frame exceeds maximum packet length")

	// ErrShortPayload is returned when a frame payload is too small to hold a
	// Message for the configured Layout.
	ErrShortPayload = errors.New("payload shorter than message")

	// ErrTooManyAddrs is returned when encoding a Message whose address list
	// does not fit the Layout capacity.
	ErrTooManyAddrs = errors.New("address list exceeds layout capacity")
)

// FramingError reports that fewer bytes are available than the structure
// being decoded requires. It is not a corruption: the caller should wait for
// more data.
type FramingError struct {
	What string
	Need int
	Have int
}

// Error ...
func (e *FramingError) Error() string {
	return fmt.Sprintf("%s: need %d bytes, have %d", e.What, e.Need, e.Have)
}

// IsFraming reports whether err is, or wraps, a *FramingError.
func IsFraming(err error) bool {
	var fe *FramingError
	return errors.As(err, &fe)
}

func needBytes(what string, need int, have int) error {
	if have < need {
		return &FramingError{What: what, Need: need, Have: have}
	}
	return nil
}
