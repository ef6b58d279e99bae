package radius

import "github.com/dantte-lp/goradius/internal/raddict"

// -------------------------------------------------------------------------
// C4 — RFC / Concat encoders
// -------------------------------------------------------------------------

// AttrMessageAuthenticator is RFC 2869 attribute 80: the encoder only
// reserves its 18-byte placeholder; the outer
// packet builder fills in the HMAC-MD5 once code/identifier/length and
// every other attribute are final.
const AttrMessageAuthenticator = 80

// AttrChargeableUserIdentity is RFC 4372 attribute 89. A zero-length value
// is a valid "request a CUI" marker and is emitted as a bare 2-byte
// attribute
const AttrChargeableUserIdentity = 89

// encodeRFC emits a single standard RFC 2865 attribute: a 1-octet type,
// 1-octet length, and the serialized value
func encodeRFC(out []byte, pkt *PacketCtx, stack raddict.Stack, avp *AVP) (int, error) {
	if len(out) < 2 {
		return 0, nil // NoRoom.
	}

	d := avp.Descriptor

	if d.Vendor == 0 && d.Attr == AttrMessageAuthenticator {
		return encodeMessageAuthenticatorPlaceholder(out)
	}

	if d.Vendor == 0 && d.Attr == AttrChargeableUserIdentity {
		if raw, err := leafBytes(avp); err == nil && len(raw) == 0 {
			out[0] = uint8(d.Attr) //nolint:gosec // G115: dispatch already bounds attr <= 255 for RFC leaves
			out[1] = 2
			return 2, nil
		}
	}

	budget := len(out) - 2
	if budget > 253 {
		budget = 253
	}

	n, err := serializeLeaf(out[2:2+budget], pkt, stack, avp)
	if err != nil {
		return 0, err
	}
	if n == 0 && (budget == 0 || d.Flags.Encrypt != raddict.EncryptNone) {
		return 0, nil // NoRoom: couldn't fit the header, or the encryption kernel needs more room.
	}

	out[0] = uint8(d.Attr) //nolint:gosec // G115: dispatch already bounds attr <= 255 for RFC leaves
	out[1] = uint8(2 + n)  //nolint:gosec // G115: n <= budget <= 253

	return 2 + n, nil
}

// encodeMessageAuthenticatorPlaceholder writes the fixed
// [80, 18, 0x00 * 16] placeholder
func encodeMessageAuthenticatorPlaceholder(out []byte) (int, error) {
	if len(out) < 18 {
		return 0, nil
	}
	out[0] = AttrMessageAuthenticator
	out[1] = 18
	for i := 2; i < 18; i++ {
		out[i] = 0
	}
	return 18, nil
}

// encodeConcat emits an Octets leaf whose flags.concat bit is set as a
// run of same-type RFC attributes, each carrying up to 253 octets of the
// value, until the value is exhausted or the buffer is full. The cursor
// advances past a Concat AVP once encodeConcat returns, even if the value
// was truncated by the buffer — any octets that did not fit are silently
// dropped. A zero-length value is still a valid attribute and is emitted
// as a single bare 2-octet header, matching encodeRFC's CUI convention.
func encodeConcat(out []byte, avp *AVP) (int, error) {
	d := avp.Descriptor
	raw, err := leafBytes(avp)
	if err != nil {
		return 0, err
	}

	if len(raw) == 0 {
		if len(out) < 2 {
			return 0, nil // NoRoom.
		}
		out[0] = uint8(d.Attr) //nolint:gosec // G115: dispatch already bounds attr <= 255 for RFC leaves
		out[1] = 2
		return 2, nil
	}

	pos := 0
	offset := 0
	for offset < len(raw) {
		room := len(out) - pos
		if room < 3 {
			break
		}

		avail := room - 2
		if avail > 253 {
			avail = 253
		}
		chunk := len(raw) - offset
		if chunk > avail {
			chunk = avail
		}

		out[pos] = uint8(d.Attr) //nolint:gosec // G115: dispatch already bounds attr <= 255 for RFC leaves
		out[pos+1] = uint8(2 + chunk)
		copy(out[pos+2:], raw[offset:offset+chunk])

		pos += 2 + chunk
		offset += chunk
	}

	return pos, nil
}
