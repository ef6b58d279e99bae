package radius

import (
	"encoding/binary"

	"github.com/dantte-lp/goradius/internal/raddict"
)

// -------------------------------------------------------------------------
// C2 — Value serializer
// -------------------------------------------------------------------------

// serializeLeaf marshals one leaf AVP's payload into out, in network byte
// order, applying the tag byte and any encryption kernel the descriptor's
// flags select.
//
// Preconditions: avp.Descriptor.Kind must be raddict.KindLeaf, and stack's
// leaf must be the same node as avp.Descriptor — callers that walk
// TLV/VSA/Extended containers resolve this before calling serializeLeaf.
func serializeLeaf(out []byte, pkt *PacketCtx, stack raddict.Stack, avp *AVP) (int, error) {
	d := avp.Descriptor
	if d.Kind != raddict.KindLeaf {
		return 0, ErrExpectedTLV
	}
	if stack.Leaf() != d {
		return 0, ErrDescriptorMismatch
	}

	switch d.Flags.Encrypt {
	case raddict.EncryptUserPassword:
		return encodeUserPasswordLeaf(out, pkt, avp)
	case raddict.EncryptTunnelPassword:
		return encodeTunnelPasswordLeaf(out, pkt, avp)
	case raddict.EncryptAscendSecret:
		return encodeAscendSecretLeaf(out, pkt, avp)
	default:
		return encodePlainLeaf(out, avp)
	}
}

// serializeLeafFull returns the complete tag-applied, encryption-applied
// bytes for a leaf, with no truncation, for callers that must fragment
// the whole value across sibling attributes (LongExtended, WiMAX) rather
// than write it directly into a bounded out buffer.
func serializeLeafFull(pkt *PacketCtx, stack raddict.Stack, avp *AVP) ([]byte, error) {
	scratch := make([]byte, len(avp.Raw)+32)
	n, err := serializeLeaf(scratch, pkt, stack, avp)
	if err != nil {
		return nil, err
	}
	return scratch[:n], nil
}

// leafBytes selects the raw, pre-tag, pre-encryption bytes for a leaf
// value by its ValueKind.
//
// For octet-string-shaped kinds this returns avp.Raw directly, not a
// copy, so callers never pay an allocation just to read a leaf's bytes.
func leafBytes(avp *AVP) ([]byte, error) {
	d := avp.Descriptor

	switch d.ValueKind {
	case raddict.ValueString, raddict.ValueOctets,
		raddict.ValueIPv4Addr, raddict.ValueIPv6Addr,
		raddict.ValueIPv4Prefix, raddict.ValueIPv6Prefix,
		raddict.ValueInterfaceID, raddict.ValueEthernet,
		raddict.ValueAbinary, raddict.ValueComboIP:
		if avp.Raw == nil {
			return nil, ErrNilValue
		}
		return avp.Raw, nil

	case raddict.ValueByte, raddict.ValueShort, raddict.ValueInteger, raddict.ValueInteger64, raddict.ValueDate:
		width := scalarWidth(d.ValueKind)
		var scratch [8]byte
		binary.BigEndian.PutUint64(scratch[:], avp.Uint)
		return scratch[8-width:], nil

	case raddict.ValueSigned:
		var scratch [4]byte
		binary.BigEndian.PutUint32(scratch[:], uint32(avp.Int)) //nolint:gosec // G115: intentional two's complement reinterpretation
		return scratch[:], nil

	case raddict.ValueBoolean:
		if avp.Bool {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	default:
		return nil, ErrUnknownValueKind
	}
}

// applyTag handles tag placement for the EncryptNone case: prepend the
// tag byte for String values, overwrite the first byte with the tag for
// Integer values, and leave all other value kinds untouched.
func applyTag(d *raddict.Attribute, avp *AVP, raw []byte) []byte {
	if !d.Flags.HasTag || avp.Tag < 1 || avp.Tag > 31 {
		return raw
	}

	switch d.ValueKind {
	case raddict.ValueString:
		tagged := make([]byte, 0, len(raw)+1)
		tagged = append(tagged, avp.Tag)
		tagged = append(tagged, raw...)
		return tagged
	case raddict.ValueInteger:
		if len(raw) == 0 {
			return raw
		}
		tagged := make([]byte, len(raw))
		copy(tagged, raw)
		tagged[0] = avp.Tag
		return tagged
	default:
		return raw
	}
}

// encodePlainLeaf handles the EncryptNone path: select raw bytes, apply
// the tag convention, truncate to the remaining buffer.
func encodePlainLeaf(out []byte, avp *AVP) (int, error) {
	raw, err := leafBytes(avp)
	if err != nil {
		return 0, err
	}
	raw = applyTag(avp.Descriptor, avp, raw)

	n := len(raw)
	if n > len(out) {
		n = len(out)
	}
	copy(out, raw[:n])

	return n, nil
}

// encodeUserPasswordLeaf handles the User-Password encryption path.
func encodeUserPasswordLeaf(out []byte, pkt *PacketCtx, avp *AVP) (int, error) {
	if avp.Raw == nil {
		return 0, ErrNilValue
	}
	if len(avp.Raw) > 128 {
		return 0, ErrEncryptedValueTooLong
	}

	vector := pkt.vectorFor()
	cipher := EncryptUserPassword(pkt.Secret, vector, avp.Raw)

	n := len(cipher)
	if n > len(out) {
		n = len(out)
	}
	copy(out, cipher[:n])

	return n, nil
}

// encodeTunnelPasswordLeaf handles the Tunnel-Password encryption path:
// requires >= 18 free octets (19 if tagged), optionally prepends the tag
// byte, then lays out [salt(2)][length(1)][padded cipher].
func encodeTunnelPasswordLeaf(out []byte, pkt *PacketCtx, avp *AVP) (int, error) {
	if avp.Raw == nil {
		return 0, ErrNilValue
	}
	if len(avp.Raw) > 128 {
		return 0, ErrEncryptedValueTooLong
	}

	d := avp.Descriptor
	tagged := d.Flags.HasTag && avp.Tag >= 1 && avp.Tag <= 31

	minLen := 18
	if tagged {
		minLen = 19
	}
	if len(out) < minLen {
		return 0, nil // NoRoom for this attribute; caller flushes and retries.
	}

	offset := 0
	if tagged {
		out[0] = avp.Tag
		offset = 1
	}

	salt := nextTunnelSalt()
	out[offset] = salt[0]
	out[offset+1] = salt[1]

	vector := pkt.vectorFor()
	budget := len(out) - offset - 2
	cipher := EncryptTunnelPassword(pkt.Secret, vector, salt, avp.Raw, budget)
	copy(out[offset+2:], cipher)

	return offset + 2 + len(cipher), nil
}

// encodeAscendSecretLeaf handles the Ascend-Secret path: the cleartext value must be exactly 16 octets.
func encodeAscendSecretLeaf(out []byte, pkt *PacketCtx, avp *AVP) (int, error) {
	if avp.Raw == nil {
		return 0, ErrNilValue
	}
	if len(avp.Raw) != 16 {
		return 0, ErrAscendSecretLength
	}

	var in [16]byte
	copy(in[:], avp.Raw)

	vector := pkt.vectorFor()
	cipher := EncryptAscendSecret(pkt.Secret, vector, in)

	n := len(cipher)
	if n > len(out) {
		n = len(out)
	}
	copy(out, cipher[:n])

	return n, nil
}
