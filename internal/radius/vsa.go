package radius

import "github.com/dantte-lp/goradius/internal/raddict"

// -------------------------------------------------------------------------
// C6 — VSA / Vendor encoder
// -------------------------------------------------------------------------

// vsaType is RFC 2865 attribute 26, the outer Vendor-Specific Attribute
// wrapper every inner vendor header is nested inside.
const vsaType = 26

// encodeVSA is the dispatch-facing entry point for a root-level VSA
// container that is not flagged WiMAX. It rebuilds the stack, locates the
// Vendor child beneath the VSA root, and writes the outer
// [26, length, vendor_id(4)] header before packing inner attributes.
func encodeVSA(out []byte, pkt *PacketCtx, cursor *AVP) (int, *AVP, error) {
	stack, err := raddict.Build(cursor.Descriptor)
	if err != nil {
		return 0, cursor, ErrStackOverflow
	}
	root := stack.Root()
	if root.Kind != raddict.KindVSA {
		return 0, cursor, ErrExpectedTLV
	}
	vendorNode := stack.At(1)
	if vendorNode == nil || vendorNode.Kind != raddict.KindVendor {
		return 0, cursor, ErrExpectedTLV
	}

	if len(out) < 6 {
		return 0, cursor, nil // NoRoom.
	}

	limit := len(out)
	if limit > 255 {
		limit = 255
	}
	scratch := make([]byte, limit)

	vendor, ok := lookupVendor(pkt, vendorNode.Vendor)
	if !ok {
		vendor = raddict.Vendor{Number: vendorNode.Vendor, TypeWidth: 1, LengthWidth: 1}
	}

	n, next, err := encodeVSAInner(scratch[6:], pkt, vendorNode, vendor, cursor)
	if err != nil {
		return 0, cursor, err
	}
	if n == 0 {
		return 0, cursor, nil // NoRoom for even one inner attribute.
	}

	scratch[0] = vsaType
	scratch[1] = uint8(6 + n) //nolint:gosec // G115: 6+n <= limit <= 255
	writeVendorID(scratch[2:6], vendorNode.Vendor)

	total := 6 + n
	copy(out, scratch[:total])
	return total, next, nil
}

// lookupVendor resolves number against pkt.Vendors, tolerating a nil table.
func lookupVendor(pkt *PacketCtx, number uint32) (raddict.Vendor, bool) {
	if pkt.Vendors == nil {
		return raddict.Vendor{}, false
	}
	return pkt.Vendors.Lookup(number)
}

// writeVendorID writes the 4-octet big-endian enterprise number.
func writeVendorID(dst []byte, vendor uint32) {
	dst[0] = uint8(vendor >> 24) //nolint:gosec // G115: intentional byte extraction
	dst[1] = uint8(vendor >> 16) //nolint:gosec // G115: intentional byte extraction
	dst[2] = uint8(vendor >> 8)  //nolint:gosec // G115: intentional byte extraction
	dst[3] = uint8(vendor)       //nolint:gosec // G115: intentional byte extraction
}

// encodeVSAInner packs vendorNode's direct children into out using
// (vendor.TypeWidth, vendor.LengthWidth). A (1,1) vendor —
// whether because the dictionary says so or because the vendor was
// unknown to the table — delegates verbatim to encodeRFC, since a 1-octet
// type plus a 1-octet length initialized to type_width+1 (=2) is
// byte-identical to the standard RFC header.
func encodeVSAInner(out []byte, pkt *PacketCtx, vendorNode *raddict.Attribute, vendor raddict.Vendor, cursor *AVP) (int, *AVP, error) {
	pos := 0
	cur := cursor

	for cur != nil {
		childStack, err := raddict.Build(cur.Descriptor)
		if err != nil {
			return 0, cursor, ErrStackOverflow
		}
		if childStack.At(vendorNode.Depth) != vendorNode {
			break
		}
		child := childStack.At(vendorNode.Depth + 1)
		if child == nil || child.Kind != raddict.KindLeaf {
			return 0, cursor, ErrUnknownValueKind
		}

		room := len(out) - pos
		var n int
		if vendor.TypeWidth == 1 && vendor.LengthWidth == 1 {
			n, err = encodeRFC(out[pos:], pkt, childStack, cur)
		} else {
			n, err = encodeVSAChild(out[pos:], pkt, childStack, cur, vendor)
		}
		if err != nil {
			return 0, cursor, err
		}
		if n == 0 || room < n {
			break
		}

		pos += n
		cur = cur.Next
	}

	return pos, cur, nil
}

// encodeVSAChild writes one inner attribute for a non-default vendor width
// combination: a type_width-octet attribute number (the leading octet is
// always 0 when type_width is 4), an optional length_width-octet length
// initialized to type_width+length_width, and the serialized value.
func encodeVSAChild(out []byte, pkt *PacketCtx, stack raddict.Stack, avp *AVP, vendor raddict.Vendor) (int, error) {
	hdrLen := vendor.TypeWidth + vendor.LengthWidth
	if hdrLen <= 0 || hdrLen > len(out) {
		return 0, nil // NoRoom.
	}

	switch vendor.TypeWidth {
	case 1:
		out[0] = uint8(avp.Descriptor.Attr) //nolint:gosec // G115: vendor dictionary bounds the attr width
	case 2:
		out[0] = uint8(avp.Descriptor.Attr >> 8) //nolint:gosec // G115: vendor dictionary bounds the attr width
		out[1] = uint8(avp.Descriptor.Attr)      //nolint:gosec // G115: vendor dictionary bounds the attr width
	case 4:
		out[0] = 0
		out[1] = uint8(avp.Descriptor.Attr >> 16) //nolint:gosec // G115: vendor dictionary bounds the attr width
		out[2] = uint8(avp.Descriptor.Attr >> 8)  //nolint:gosec // G115: vendor dictionary bounds the attr width
		out[3] = uint8(avp.Descriptor.Attr)       //nolint:gosec // G115: vendor dictionary bounds the attr width
	default:
		return 0, ErrUnknownVendorWidths
	}

	lenOffset := vendor.TypeWidth
	switch vendor.LengthWidth {
	case 0:
		// No length field: value runs to the end of the parent's budget.
	case 1:
		out[lenOffset] = uint8(hdrLen) //nolint:gosec // G115: hdrLen <= 6
	case 2:
		out[lenOffset] = 0
		out[lenOffset+1] = uint8(hdrLen) //nolint:gosec // G115: hdrLen <= 6
	default:
		return 0, ErrUnknownVendorWidths
	}

	budget := len(out) - hdrLen
	if budget > 253 {
		budget = 253
	}

	n, err := serializeLeaf(out[hdrLen:hdrLen+budget], pkt, stack, avp)
	if err != nil {
		return 0, err
	}
	if n == 0 && (budget == 0 || avp.Descriptor.Flags.Encrypt != raddict.EncryptNone) {
		return 0, nil
	}

	switch vendor.LengthWidth {
	case 1:
		out[lenOffset] = uint8(hdrLen + n) //nolint:gosec // G115: hdrLen+n <= len(out) <= 255
	case 2:
		out[lenOffset+1] = uint8(hdrLen + n) //nolint:gosec // G115: hdrLen+n <= len(out) <= 255
	}

	return hdrLen + n, nil
}
