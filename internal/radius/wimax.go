package radius

import "github.com/dantte-lp/goradius/internal/raddict"

// -------------------------------------------------------------------------
// C8 — WiMAX encoder
// -------------------------------------------------------------------------

// encodeWiMAX is the dispatch-facing entry point for a root-level VSA
// flagged wimax. It always delegates to fragment()
// with hdr_len=9 (the full outer-VSA-plus-inner-header template): a value
// that fits in one attribute and one that needs continuation both fall out
// of the same capacity-check-then-layout pass, since numFrags==1 collapses
// to the single-attribute case with the continuation byte already clear.
func encodeWiMAX(out []byte, pkt *PacketCtx, cursor *AVP) (int, *AVP, error) {
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
	leaf := stack.At(2)
	if leaf == nil || leaf.Kind != raddict.KindLeaf || stack.Leaf() != leaf {
		return 0, cursor, ErrExpectedTLV
	}

	raw, err := serializeLeafFull(pkt, stack, cursor)
	if err != nil {
		return 0, cursor, err
	}

	header := make([]byte, 9)
	header[0] = vsaType
	header[1] = 9
	writeVendorID(header[2:6], vendorNode.Vendor)
	header[6] = uint8(leaf.Attr) //nolint:gosec // G115: WiMAX inner attr numbers fit a byte by dictionary construction
	header[7] = 3
	header[8] = 0

	n, err := fragment(out, header, 1, 8, 7, raw)
	if err != nil {
		return 0, cursor, err
	}
	if n == 0 {
		return 0, cursor, nil // NoRoom: partial encode, caller flushes and retries.
	}
	if pkt.Metrics != nil {
		recordFragments(pkt.Metrics, root.Kind.String(), len(header), len(raw), n)
	}

	return n, cursor.Next, nil
}
