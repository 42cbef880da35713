package node

import (
	"reflect"
	"testing"

	"github.com/dpowrelay/relay/src/common"
	"github.com/dpowrelay/relay/src/net"
	"github.com/dpowrelay/relay/src/wire"
)

func TestDialerSelect(t *testing.T) {
	_, trans := net.NewInmemTransport("")
	defer trans.Close()

	d := NewDialer(trans, 13344, []string{
		"tcp://0.0.0.0:13344",
		"tcp://10.0.0.1:13344",
		"",
	}, common.NewTestEntry(t, common.TestLogLevel))

	addrs := []wire.Address{
		{0, 0, 0, 0},
		{10, 0, 0, 1},
		{1, 1, 1, 1},
		{2, 2, 2, 2},
		{1, 1, 1, 1},
	}

	exp := []string{"tcp://1.1.1.1:13344", "tcp://2.2.2.2:13344"}
	if got := d.Select(addrs); !reflect.DeepEqual(got, exp) {
		t.Fatalf("select should return %v, got %v", exp, got)
	}

	if !d.Dial("tcp://1.1.1.1:13344") {
		t.Fatalf("first dial should be attempted")
	}
	if d.Dial("tcp://1.1.1.1:13344") {
		t.Fatalf("second dial of the same endpoint should be skipped")
	}

	if got := d.Select(addrs); !reflect.DeepEqual(got, []string{"tcp://2.2.2.2:13344"}) {
		t.Fatalf("dialed endpoints should not be selected again, got %v", got)
	}

	if n := d.DialAll(addrs); n != 1 {
		t.Fatalf("DialAll should dial one endpoint, dialed %d", n)
	}
	if !reflect.DeepEqual(trans.Dials(), exp) {
		t.Fatalf("transport dials should be %v, got %v", exp, trans.Dials())
	}
	if len(d.Select(addrs)) != 0 {
		t.Fatalf("nothing should be left to dial")
	}
}

func TestDialerFailureIsNotFatal(t *testing.T) {
	_, trans := net.NewInmemTransport("")
	trans.Close()

	d := NewDialer(trans, 13344, nil, common.NewTestEntry(t, common.TestLogLevel))

	if n := d.DialAll([]wire.Address{{3, 3, 3, 3}}); n != 1 {
		t.Fatalf("failed dial should still count as attempted, got %d", n)
	}
	if len(d.Select([]wire.Address{{3, 3, 3, 3}})) != 0 {
		t.Fatalf("failed endpoint should not be retried")
	}
}

func TestToggle(t *testing.T) {
	tg := NewToggle(false)
	if tg.Enabled() {
		t.Fatalf("toggle should start off")
	}
	tg.Set(true)
	if !tg.Enabled() {
		t.Fatalf("toggle should be on")
	}
}
