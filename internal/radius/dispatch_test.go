package radius

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dantte-lp/goradius/internal/raddict"
)

func TestEncodePairNoRoom(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Attr: 1, Kind: raddict.KindLeaf, ValueKind: raddict.ValueString}
	avp := &AVP{Descriptor: d, Raw: []byte("bob")}

	out := make([]byte, 2)
	before := append([]byte{}, out...)

	n, next, err := EncodePair(out, &PacketCtx{}, avp)
	if err != nil {
		t.Fatalf("EncodePair: %v", err)
	}
	if n != 0 {
		t.Fatalf("n = %d, want 0", n)
	}
	if next != avp {
		t.Fatalf("next = %v, want unchanged cursor", next)
	}
	if !bytes.Equal(out, before) {
		t.Fatal("NoRoom must not mutate the output buffer")
	}
}

func TestEncodePairNilCursor(t *testing.T) {
	t.Parallel()

	if _, _, err := EncodePair(make([]byte, 64), &PacketCtx{}, nil); err == nil {
		t.Fatal("EncodePair(nil cursor): want error")
	}
}

func TestEncodePairValueIgnored(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Attr: 300, Kind: raddict.KindLeaf, ValueKind: raddict.ValueString}
	avp := &AVP{Descriptor: d, Raw: []byte("x")}
	avp.Next = &AVP{Descriptor: &raddict.Attribute{Attr: 1, Kind: raddict.KindLeaf, ValueKind: raddict.ValueString}, Raw: []byte("y")}

	out := make([]byte, 64)
	n, next, err := EncodePair(out, &PacketCtx{}, avp)
	if err != nil {
		t.Fatalf("EncodePair: %v", err)
	}
	if n != 0 {
		t.Fatalf("n = %d, want 0 (ValueIgnored)", n)
	}
	if next != avp.Next {
		t.Fatalf("next = %v, want cursor advanced past the ignored attribute", next)
	}
}

func TestEncodePairEVSAtTopErrors(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Vendor: 9, Kind: raddict.KindEVS}
	avp := &AVP{Descriptor: d}

	_, _, err := EncodePair(make([]byte, 64), &PacketCtx{}, avp)
	if !errors.Is(err, ErrEVSAtTop) {
		t.Fatalf("EncodePair(EVS at top) = %v, want ErrEVSAtTop", err)
	}
	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("EncodePair(EVS at top) = %v, want *EncodeError", err)
	}
}

func TestEncodePairUserNameEndToEnd(t *testing.T) {
	t.Parallel()

	d := &raddict.Attribute{Attr: 1, Kind: raddict.KindLeaf, ValueKind: raddict.ValueString}
	avp := &AVP{Descriptor: d, Raw: []byte("bob")}

	out := make([]byte, 64)
	n, next, err := EncodePair(out, &PacketCtx{}, avp)
	if err != nil {
		t.Fatalf("EncodePair: %v", err)
	}
	if next != nil {
		t.Fatalf("next = %v, want nil", next)
	}

	want := []byte{0x01, 0x05, 0x62, 0x6f, 0x62}
	if !bytes.Equal(out[:n], want) {
		t.Fatalf("EncodePair = % x, want % x", out[:n], want)
	}
}

// TestEncodePairCursorMonotonic checks the general property that every
// call either advances the cursor or returns 0 with no buffer mutation.
func TestEncodePairCursorMonotonic(t *testing.T) {
	t.Parallel()

	var head *AVP
	for i := 1; i <= 5; i++ {
		d := &raddict.Attribute{Attr: uint32(i), Kind: raddict.KindLeaf, ValueKind: raddict.ValueString}
		avp := &AVP{Descriptor: d, Raw: []byte("v"), Next: head}
		head = avp
	}

	pkt := &PacketCtx{}
	cursor := head
	for range 5 {
		out := make([]byte, 16)
		before := append([]byte{}, out...)
		n, next, err := EncodePair(out, pkt, cursor)
		if err != nil {
			t.Fatalf("EncodePair: %v", err)
		}
		if n == 0 {
			if next != cursor {
				t.Fatal("n == 0 but cursor advanced")
			}
			if !bytes.Equal(out, before) {
				t.Fatal("n == 0 but buffer was mutated")
			}
			break
		}
		if next == cursor {
			t.Fatal("n > 0 but cursor did not advance")
		}
		cursor = next
	}
}
