package relay

import (
	"errors"
	"testing"

	"github.com/dpowrelay/relay/src/auth"
	"github.com/dpowrelay/relay/src/crypto/keys"
	"github.com/dpowrelay/relay/src/notary"
	"github.com/dpowrelay/relay/src/wire"
)

func TestAnnouncementSealFrame(t *testing.T) {
	key, err := keys.GenerateECDSAKey()
	if err != nil {
		t.Fatal(err)
	}

	layout := wire.DefaultLayout()
	a := &Announcement{
		Sender:    63,
		MyAddress: wire.Address{104, 238, 221, 61},
		Addrs:     []wire.Address{{188, 34, 187, 0}, {0, 0, 0, 0}, {1, 2, 3, 4}},
		Symbol:    "TOKEL",
		Height:    608290,
		Version:   23,
	}

	b, err := a.SealFrame(layout, key)
	if err != nil {
		t.Fatal(err)
	}

	r := wire.NewFrameReader()
	r.Feed(b)
	f, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}

	pub, err := auth.Authenticate(f.Header, f.Payload)
	if err != nil {
		t.Fatalf("sealed frame should authenticate: %v", err)
	}
	if keys.PublicKeyHex(pub) != keys.PublicKeyHex(&key.PublicKey) {
		t.Fatalf("recovered key should be the signer's")
	}

	msg, err := f.Message(layout)
	if err != nil {
		t.Fatal(err)
	}
	if msg.SenderInd != 63 || msg.SymbolString() != "TOKEL" || msg.NumAddrs != 3 {
		t.Fatalf("unexpected message %+v", msg)
	}
	if msg.Addrs[2] != (wire.Address{1, 2, 3, 4}) || len(msg.Addrs) != layout.AddrCapacity {
		t.Fatalf("address list should be padded to capacity")
	}
}

func TestAnnouncementInvalidSender(t *testing.T) {
	a := &Announcement{Sender: notary.Count}
	if _, err := a.Message(); !errors.Is(err, notary.ErrInvalidSender) {
		t.Fatalf("expected ErrInvalidSender, got %v", err)
	}
}
