package wire

import (
	"fmt"
	"net"
)

// Address is an IPv4 address in network byte order, as carried in the
// myaddress and addrs fields. The all-zero Address means "absent".
type Address [4]byte

// ParseAddress parses a dotted-quad IPv4 address.
func ParseAddress(s string) (Address, error) {
	var a Address
	ip := net.ParseIP(s).To4()
	if ip == nil {
		return a, fmt.Errorf("not an IPv4 address: %q", s)
	}
	copy(a[:], ip)
	return a, nil
}

// IsZero reports whether a is the "absent" sentinel 0.0.0.0.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the dotted-quad form of a.
func (a Address) String() string {
	return net.IPv4(a[0], a[1], a[2], a[3]).String()
}
