package net

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/dpowrelay/relay/src/wire"
)

// TCPURL returns the bus endpoint of a notary address.
func TCPURL(a wire.Address, port int) string {
	return fmt.Sprintf("tcp://%s", net.JoinHostPort(a.String(), strconv.Itoa(port)))
}

// SplitEndpoint returns the host and port of a tcp:// endpoint.
func SplitEndpoint(endpoint string) (host string, port string, err error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "tcp" {
		return "", "", fmt.Errorf("unsupported scheme %q in %s", u.Scheme, endpoint)
	}
	return net.SplitHostPort(u.Host)
}

// SameEndpoint reports whether a and b name the same host and port.
func SameEndpoint(a, b string) bool {
	ha, pa, err := SplitEndpoint(a)
	if err != nil {
		return false
	}
	hb, pb, err := SplitEndpoint(b)
	if err != nil {
		return false
	}
	return ha == hb && pa == pb
}
