package radius

import (
	"bytes"
	"testing"

	"github.com/dantte-lp/goradius/internal/raddict"
)

func TestEncodeRFCUserNameShort(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Attr: 1, Kind: raddict.KindLeaf, ValueKind: raddict.ValueString, Name: "User-Name"}
	stack, err := raddict.Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	avp := &AVP{Descriptor: d, Raw: []byte("bob")}
	pkt := &PacketCtx{}

	out := make([]byte, 64)
	n, err := encodeRFC(out, pkt, stack, avp)
	if err != nil {
		t.Fatalf("encodeRFC: %v", err)
	}

	want := []byte{0x01, 0x05, 0x62, 0x6f, 0x62}
	if !bytes.Equal(out[:n], want) {
		t.Fatalf("encodeRFC = % x, want % x", out[:n], want)
	}
}

func TestEncodeRFCMessageAuthenticatorPlaceholder(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Attr: AttrMessageAuthenticator, Kind: raddict.KindLeaf, ValueKind: raddict.ValueOctets}
	stack, err := raddict.Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	avp := &AVP{Descriptor: d, Raw: make([]byte, 16)}
	pkt := &PacketCtx{}

	out := make([]byte, 64)
	n, err := encodeRFC(out, pkt, stack, avp)
	if err != nil {
		t.Fatalf("encodeRFC: %v", err)
	}
	if n != 18 {
		t.Fatalf("n = %d, want 18", n)
	}
	if out[0] != 80 || out[1] != 18 {
		t.Fatalf("header = %d %d, want 80 18", out[0], out[1])
	}
	for _, b := range out[2:18] {
		if b != 0 {
			t.Fatalf("placeholder body = % x, want all zero", out[2:18])
		}
	}
}

func TestEncodeRFCChargeableUserIdentityEmpty(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Attr: AttrChargeableUserIdentity, Kind: raddict.KindLeaf, ValueKind: raddict.ValueOctets}
	stack, err := raddict.Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	avp := &AVP{Descriptor: d, Raw: []byte{}}
	pkt := &PacketCtx{}

	out := make([]byte, 64)
	n, err := encodeRFC(out, pkt, stack, avp)
	if err != nil {
		t.Fatalf("encodeRFC: %v", err)
	}
	if n != 2 || out[0] != AttrChargeableUserIdentity || out[1] != 2 {
		t.Fatalf("encodeRFC(empty CUI) = % x, want [89 2]", out[:n])
	}
}

func TestEncodeConcatSplitsAcrossSiblings(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Attr: 60, Kind: raddict.KindLeaf, ValueKind: raddict.ValueOctets,
		Flags: raddict.Flags{Concat: true}}
	value := bytes.Repeat([]byte{0xAB}, 400)
	avp := &AVP{Descriptor: d, Raw: value}

	out := make([]byte, 500)
	n, err := encodeConcat(out, avp)
	if err != nil {
		t.Fatalf("encodeConcat: %v", err)
	}

	// Two fragments: 253 + 147 octets of payload, each with a 2-byte header.
	if out[0] != 60 || out[1] != 255 {
		t.Fatalf("first header = %d %d, want 60 255", out[0], out[1])
	}
	second := out[255]
	secondLen := out[256]
	if second != 60 || secondLen != uint8(2+147) {
		t.Fatalf("second header = %d %d, want 60 %d", second, secondLen, 2+147)
	}
	if n != 255+2+147 {
		t.Fatalf("n = %d, want %d", n, 255+2+147)
	}

	rebuilt := append(append([]byte{}, out[2:255]...), out[257:257+147]...)
	if !bytes.Equal(rebuilt, value) {
		t.Fatal("concatenated payload does not reproduce the original value")
	}
}

// TestEncodeConcatEmptyValueEmitsBareHeader checks that a zero-length
// Concat value still advances the cursor instead of looping forever: it
// must emit a bare 2-octet header rather than returning n == 0.
func TestEncodeConcatEmptyValueEmitsBareHeader(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Attr: 11, Kind: raddict.KindLeaf, ValueKind: raddict.ValueString,
		Flags: raddict.Flags{Concat: true}}
	avp := &AVP{Descriptor: d, Raw: []byte{}}

	out := make([]byte, 64)
	n, err := encodeConcat(out, avp)
	if err != nil {
		t.Fatalf("encodeConcat: %v", err)
	}
	if n != 2 || out[0] != 11 || out[1] != 2 {
		t.Fatalf("encodeConcat(empty) = % x, want [11 2]", out[:n])
	}
}

func TestEncodeConcatStopsWhenBufferFull(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Attr: 60, Kind: raddict.KindLeaf, ValueKind: raddict.ValueOctets,
		Flags: raddict.Flags{Concat: true}}
	avp := &AVP{Descriptor: d, Raw: bytes.Repeat([]byte{1}, 100)}

	out := make([]byte, 10)
	n, err := encodeConcat(out, avp)
	if err != nil {
		t.Fatalf("encodeConcat: %v", err)
	}
	if n != 10 {
		t.Fatalf("n = %d, want 10 (buffer exactly filled)", n)
	}
}
