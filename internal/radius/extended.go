package radius

import "github.com/dantte-lp/goradius/internal/raddict"

// -------------------------------------------------------------------------
// C7 — Extended / Long-Extended encoder
// -------------------------------------------------------------------------

// encodeExtended is the dispatch-facing entry point for a root-level
// Extended or LongExtended attribute The caller is
// responsible for sizing out: the full remaining buffer for a LongExtended
// root (so fragmentation can be planned), capped at 255 otherwise.
func encodeExtended(out []byte, pkt *PacketCtx, cursor *AVP) (int, *AVP, error) {
	stack, err := raddict.Build(cursor.Descriptor)
	if err != nil {
		return 0, cursor, ErrStackOverflow
	}

	root := stack.Root()
	long := root.Kind == raddict.KindLongExtended
	if root.Kind != raddict.KindExtended && !long {
		return 0, cursor, ErrExpectedTLV
	}

	hdrLen := 3
	if long {
		hdrLen = 4
	}
	if len(out) < hdrLen {
		return 0, cursor, nil // NoRoom.
	}

	level1 := stack.At(1)
	if level1 == nil {
		return 0, cursor, ErrExpectedTLV
	}

	flagOffset := 3
	header := make([]byte, hdrLen, hdrLen+5)
	header[0] = uint8(root.Attr) //nolint:gosec // G115: extended attr numbers fit a byte by dictionary construction
	header[2] = uint8(level1.Attr)
	if long {
		header[3] = 0
	}

	if level1.Kind == raddict.KindEVS {
		level2 := stack.At(2)
		if level2 == nil {
			return 0, cursor, ErrExpectedTLV
		}
		header = append(header,
			0,
			uint8(level1.Vendor>>16), //nolint:gosec // G115: enterprise numbers fit 24 bits
			uint8(level1.Vendor>>8),  //nolint:gosec // G115: enterprise numbers fit 24 bits
			uint8(level1.Vendor),     //nolint:gosec // G115: enterprise numbers fit 24 bits
			uint8(level2.Attr),       //nolint:gosec // G115: EVS inner attr numbers fit a byte by dictionary construction
		)
	}

	if len(out) < len(header) {
		return 0, cursor, nil // NoRoom.
	}

	if long {
		raw, err := serializeLeafFull(pkt, stack, cursor)
		if err != nil {
			return 0, cursor, err
		}
		n, err := fragment(out, header, 1, flagOffset, 0, raw)
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

	budget := len(out) - len(header)
	if budget > 255-len(header) {
		budget = 255 - len(header)
	}

	n, err := serializeLeaf(out[len(header):], pkt, stack, cursor)
	if err != nil {
		return 0, cursor, err
	}
	if n == 0 && cursor.Descriptor.Flags.Encrypt != raddict.EncryptNone {
		return 0, cursor, nil // NoRoom: the encryption kernel needs more room.
	}
	if n > budget {
		n = budget // Truncated: not an error.
		if pkt.Metrics != nil {
			pkt.Metrics.IncTruncations()
		}
	}

	total := len(header) + n
	copy(out, header)
	out[1] = uint8(total) //nolint:gosec // G115: total <= len(header)+255-len(header) = 255 by construction

	return total, cursor.Next, nil
}
