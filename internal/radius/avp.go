// Package radius implements the RADIUS attribute encoder: serialization of
// a linked list of in-memory attribute-value pairs into the attribute
// region of a RADIUS packet, per RFC 2865, RFC 2868, RFC 6929, and the
// WiMAX and variable-width-vendor conventions.
//
// Packet framing (code, identifier, length, authenticators,
// Message-Authenticator HMAC finalization), the dictionary *loader*,
// decoding, CHAP helpers, and the MD5/CSPRNG primitives are all external
// collaborators — this package only encodes a resolved AVP list against a
// resolved raddict.Attribute tree.
package radius

import "github.com/dantte-lp/goradius/internal/raddict"

// AVP is one attribute-value pair: the input item the encoder consumes.
//
// Exactly one of Raw, Uint, Int, or Bool is meaningful, selected by
// Descriptor.ValueKind:
//
//   - ValueString, ValueOctets, ValueIPv4Addr, ValueIPv6Addr,
//     ValueIPv4Prefix, ValueIPv6Prefix, ValueInterfaceID, ValueEthernet,
//     ValueAbinary, ValueComboIP: Raw holds the value already laid out in
//     network byte order, exactly as it will appear on the wire.
//   - ValueByte, ValueShort, ValueInteger, ValueInteger64, ValueDate:
//     Uint holds the value in host representation; the serializer
//     converts to big-endian at encode time.
//   - ValueSigned: Int holds the value in host representation.
//   - ValueBoolean: Bool holds the single-bit flag.
//
// AVPs are produced externally and are read-only during encoding.
type AVP struct {
	// Descriptor is the dictionary node this AVP is encoded against.
	Descriptor *raddict.Attribute

	// Raw holds the wire-ready bytes for octet-string-shaped value kinds.
	Raw []byte

	// Uint holds unsigned scalar values (Byte/Short/Integer/Integer64/Date).
	Uint uint64

	// Int holds the Signed scalar value.
	Int int32

	// Bool holds the Boolean scalar value.
	Bool bool

	// Tag is valid only when Descriptor.Flags.HasTag; 0 means "no tag",
	// 1..31 is a valid tag
	Tag uint8

	// Next links to the following AVP in the caller's ordered list.
	Next *AVP
}

// scalarWidth returns the on-wire byte width of a scalar ValueKind, or 0
// if k is not a fixed-width scalar kind.
func scalarWidth(k raddict.ValueKind) int {
	switch k {
	case raddict.ValueByte:
		return 1
	case raddict.ValueShort:
		return 2
	case raddict.ValueInteger, raddict.ValueDate, raddict.ValueSigned:
		return 4
	case raddict.ValueInteger64:
		return 8
	case raddict.ValueBoolean:
		return 1
	default:
		return 0
	}
}
