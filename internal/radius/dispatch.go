package radius

import "github.com/dantte-lp/goradius/internal/raddict"

// -------------------------------------------------------------------------
// C10 — Dispatch entry
// -------------------------------------------------------------------------

// EncodePair is the encoder's public entry point. It serializes as much
// of cursor's attribute as fits in out and returns the next unencoded AVP
// to continue from, rather than mutating a caller-owned cursor in place.
// The shared secret and per-packet authenticator live on pkt rather than
// as a separate parameter, since PacketCtx.Secret is already the single
// source of truth for it.
//
// "No cursor advance implies no buffer mutation" holds across every
// branch below: a NoRoom result (n == 0, next == cursor) never touches out.
func EncodePair(out []byte, pkt *PacketCtx, cursor *AVP) (int, *AVP, error) {
	if cursor == nil {
		return 0, nil, ErrNilCursor
	}
	if len(out) <= 2 {
		return 0, cursor, nil // NoRoom
	}

	stack, err := raddict.Build(cursor.Descriptor)
	if err != nil {
		return 0, cursor, wrapEncodeErr(cursor, ErrStackOverflow)
	}
	root := stack.Root()

	// Cap working length at 255 unless the outermost descriptor needs the
	// full buffer to plan fragmentation
	working := out
	needsFullBuffer := root.Kind == raddict.KindLongExtended ||
		(root.Kind == raddict.KindLeaf && root.Flags.Concat)
	if !needsFullBuffer && len(working) > 255 {
		working = working[:255]
	}

	var (
		n    int
		next *AVP
	)

	switch {
	case root.Kind == raddict.KindLeaf && root.Attr > 255 && !root.Flags.Concat:
		return 0, cursor.Next, nil // ValueIgnored

	case root.Kind == raddict.KindLeaf && root.Flags.Concat:
		n, err = encodeConcat(working, cursor)
		next = cursor
		if err == nil && n > 0 {
			next = cursor.Next
		}

	case root.Kind == raddict.KindLeaf:
		n, err = encodeRFC(working, pkt, stack, cursor)
		next = cursor
		if err == nil && n > 0 {
			next = cursor.Next
		}

	case root.Kind == raddict.KindVSA && root.Flags.WiMAX:
		n, next, err = encodeWiMAX(working, pkt, cursor)

	case root.Kind == raddict.KindVSA:
		n, next, err = encodeVSA(working, pkt, cursor)

	case root.Kind == raddict.KindTLV:
		n, next, err = encodeTLV(working, pkt, cursor)

	case root.Kind == raddict.KindExtended, root.Kind == raddict.KindLongExtended:
		n, next, err = encodeExtended(working, pkt, cursor)

	case root.Kind == raddict.KindEVS:
		return 0, cursor, wrapEncodeErr(cursor, ErrEVSAtTop)

	default:
		return 0, cursor, wrapEncodeErr(cursor, ErrUnknownValueKind)
	}

	if err != nil {
		return 0, cursor, wrapEncodeErr(cursor, err)
	}

	if next == cursor {
		// No progress. A working buffer already at the 255-octet ceiling
		// (or, for Concat/LongExtended, the caller's full buffer) that
		// still can't fit one attribute is the "too large to encode"
		// fault; anything smaller is an
		// ordinary NoRoom the caller resolves by flushing and retrying.
		if n == 0 {
			if len(working) >= 255 {
				return 0, cursor, wrapEncodeErr(cursor, ErrTooLargeToEncode)
			}
			return 0, cursor, nil
		}
		return 0, cursor, wrapEncodeErr(cursor, ErrTooLargeToEncode)
	}

	return n, next, nil
}
