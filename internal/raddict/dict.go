// Package raddict defines the resolved attribute-dictionary tree consumed
// by the RADIUS encoder (internal/radius).
//
// Parsing a text-format dictionary file is explicitly out of scope here:
// callers build an Attribute tree however they like — from a hand-written
// table, from koanf configuration, or from a real
// dictionary parser they bring themselves — and hand the resolved root
// nodes to the encoder. This package only defines the node shapes, the
// per-vendor wire-width table, and the depth-bounded stack the encoder
// walks while serializing one AVP.
package raddict

import "fmt"

// MaxTLVStack is the maximum descriptor depth the encoder tolerates.
const MaxTLVStack = 16

// Kind identifies the shape of an Attribute node in the dictionary tree.
type Kind uint8

const (
	// KindLeaf is a terminal attribute carrying a scalar or octet value.
	KindLeaf Kind = iota
	// KindTLV is a Type-Length-Value container holding leaf or TLV children.
	KindTLV
	// KindVSA is a Vendor-Specific Attribute (type 26) container.
	KindVSA
	// KindVendor is a single vendor's namespace root beneath a VSA.
	KindVendor
	// KindEVS is an Extended Vendor-Specific sub-format inside an Extended attribute.
	KindEVS
	// KindExtended is an RFC 6929 extended attribute.
	KindExtended
	// KindLongExtended is an RFC 6929 long-extended (fragmentable) attribute.
	KindLongExtended
)

// String returns the human-readable name of the node kind.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "Leaf"
	case KindTLV:
		return "TLV"
	case KindVSA:
		return "VSA"
	case KindVendor:
		return "Vendor"
	case KindEVS:
		return "EVS"
	case KindExtended:
		return "Extended"
	case KindLongExtended:
		return "LongExtended"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ValueKind identifies the wire representation of a leaf attribute's value.
type ValueKind uint8

const (
	// ValueString is a UTF-8 / opaque text value, length-bounded only by
	// the attribute header.
	ValueString ValueKind = iota
	// ValueOctets is an opaque byte string.
	ValueOctets
	// ValueIPv4Addr is a 4-byte IPv4 address.
	ValueIPv4Addr
	// ValueIPv6Addr is a 16-byte IPv6 address.
	ValueIPv6Addr
	// ValueIPv4Prefix is a 6-byte IPv4 prefix (reserved, prefix-len, 4 addr bytes).
	ValueIPv4Prefix
	// ValueIPv6Prefix is an 18-byte IPv6 prefix (reserved, prefix-len, 16 addr bytes).
	ValueIPv6Prefix
	// ValueInterfaceID is an 8-byte interface identifier.
	ValueInterfaceID
	// ValueEthernet is a 6-byte MAC address.
	ValueEthernet
	// ValueAbinary is an opaque Ascend filter binary blob.
	ValueAbinary
	// ValueComboIP is either a 4-byte or 16-byte address, length-discriminated.
	ValueComboIP
	// ValueByte is a 1-byte unsigned integer.
	ValueByte
	// ValueShort is a 2-byte unsigned integer.
	ValueShort
	// ValueInteger is a 4-byte unsigned integer.
	ValueInteger
	// ValueInteger64 is an 8-byte unsigned integer.
	ValueInteger64
	// ValueDate is a 4-byte POSIX timestamp.
	ValueDate
	// ValueSigned is a 4-byte signed integer.
	ValueSigned
	// ValueBoolean is a 1-byte flag (bit 0 only is significant).
	ValueBoolean
)

// Encrypt identifies the in-place obfuscation applied to a leaf's value
// during encoding.
type Encrypt uint8

const (
	// EncryptNone applies no obfuscation.
	EncryptNone Encrypt = iota
	// EncryptUserPassword applies the RFC 2865 §5.2 MD5-chain keystream.
	EncryptUserPassword
	// EncryptTunnelPassword applies the RFC 2868 salted MD5-chain keystream.
	EncryptTunnelPassword
	// EncryptAscendSecret applies the single-block Ascend-Secret hash.
	EncryptAscendSecret
)

// Flags is the bitset of dictionary-derived behaviors attached to an
// Attribute.
type Flags struct {
	// HasTag marks the attribute as carrying a RFC 2868 tag byte.
	HasTag bool
	// Concat marks an Octets leaf whose value may be split across several
	// sibling attributes of the same type.
	Concat bool
	// LongExtended marks an Extended attribute that supports the M-bit
	// continuation fragmentation of RFC 6929.
	LongExtended bool
	// WiMAX marks a VSA that uses the WiMAX-style continuation byte
	// instead of plain RFC 6929 extended framing.
	WiMAX bool
	// EVS marks an Extended attribute that carries an Extended
	// Vendor-Specific sub-format.
	EVS bool
	// Encrypt selects the value obfuscation kernel, if any.
	Encrypt Encrypt
}

// Attribute is an immutable dictionary node: one point in the attribute
// hierarchy an AVP may be encoded against.
type Attribute struct {
	// Attr is the numeric identifier within the parent's namespace
	// (1..2^24-1).
	Attr uint32
	// Vendor is the enterprise number; 0 for IETF-space attributes.
	Vendor uint32
	// Kind selects which encoder in internal/radius handles this node.
	Kind Kind
	// ValueKind is meaningful only when Kind == KindLeaf.
	ValueKind ValueKind
	// Flags carries the tag/concat/long-extended/wimax/evs/encrypt bits.
	Flags Flags
	// Parent is the enclosing node, or nil at the root of a tree.
	Parent *Attribute
	// Depth is the distance from the tree root; root depth is 0.
	Depth int
	// Name is used only for diagnostics (error messages, logging).
	Name string
}

// IsRoot reports whether a is a top-level attribute (no parent).
func (a *Attribute) IsRoot() bool {
	return a.Parent == nil
}

// Root walks up the Parent chain and returns the top-level ancestor.
func (a *Attribute) Root() *Attribute {
	n := a
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Vendor describes the wire layout of a vendor's inner VSA headers.
type Vendor struct {
	// Number is the enterprise number (IANA PEN).
	Number uint32
	// Name is used only for diagnostics.
	Name string
	// TypeWidth is the inner attribute-number field width: 1, 2, or 4 bytes.
	TypeWidth int
	// LengthWidth is the inner length field width: 0 (absent), 1, or 2 bytes.
	LengthWidth int
}

// VendorTable looks up a Vendor descriptor by enterprise number.
type VendorTable interface {
	// Lookup returns the Vendor descriptor for number, or ok=false if the
	// vendor is not known (the encoder then falls back to RFC-delegate
	// framing).
	Lookup(number uint32) (v Vendor, ok bool)
}

// StaticVendorTable is a VendorTable backed by an in-memory map, the form
// callers populate from configuration (internal/config) or from a
// hand-written table.
type StaticVendorTable map[uint32]Vendor

// Lookup implements VendorTable.
func (t StaticVendorTable) Lookup(number uint32) (Vendor, bool) {
	v, ok := t[number]
	return v, ok
}

// WiMAXEnterpriseNumber is the IANA-assigned WiMAX Forum enterprise number
// used by the WiMAX VSA encoder.
const WiMAXEnterpriseNumber = 24757

// DefaultVendors returns a small built-in vendor table covering the
// (type_width, length_width) shapes used in the test suite and the
// WiMAX continuation format: Cisco (9), Microsoft (311), and WiMAX
// (24757).
func DefaultVendors() StaticVendorTable {
	return StaticVendorTable{
		9: {Number: 9, Name: "Cisco", TypeWidth: 1, LengthWidth: 1},
		311: {
			Number: 311, Name: "Microsoft", TypeWidth: 1, LengthWidth: 1,
		},
		WiMAXEnterpriseNumber: {
			Number: WiMAXEnterpriseNumber, Name: "WiMAX", TypeWidth: 1, LengthWidth: 1,
		},
	}
}
