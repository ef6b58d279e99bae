package radius

import "github.com/dantte-lp/goradius/internal/raddict"

// -------------------------------------------------------------------------
// C5 — TLV encoder
// -------------------------------------------------------------------------

// encodeTLV is the dispatch-facing entry point for a root-level TLV
// container: it rebuilds the stack for cursor, verifies the
// root is a TLV node, and hands off to encodeTLVContainer.
func encodeTLV(out []byte, pkt *PacketCtx, cursor *AVP) (int, *AVP, error) {
	stack, err := raddict.Build(cursor.Descriptor)
	if err != nil {
		return 0, cursor, ErrStackOverflow
	}
	root := stack.Root()
	if root.Kind != raddict.KindTLV {
		return 0, cursor, ErrExpectedTLV
	}
	return encodeTLVContainer(out, pkt, root, cursor)
}

// encodeTLVContainer writes parent's header ([attr, length]) then packs as
// many of parent's direct children as fit, recursing into
// encodeTLVContainer for grandchild TLVs and into encodeRFC for leaves.
// Reentrant: nested TLVs call back into this same
// function.
//
// The whole container is assembled in a bounded scratch buffer first and
// copied to out only once fully packed, so a hard error from a child never
// leaves out partially mutated — preserving "no cursor advance implies no
// buffer mutation" at the container granularity.
func encodeTLVContainer(out []byte, pkt *PacketCtx, parent *raddict.Attribute, cursor *AVP) (int, *AVP, error) {
	if len(out) < 2 {
		return 0, cursor, nil // NoRoom.
	}

	limit := len(out)
	if limit > 255 {
		limit = 255
	}
	scratch := make([]byte, limit)

	pos := 2
	cur := cursor

	for cur != nil {
		childStack, err := raddict.Build(cur.Descriptor)
		if err != nil {
			return 0, cursor, ErrStackOverflow
		}
		if childStack.At(parent.Depth) != parent {
			break // Sibling with a different parent: this container is done.
		}

		child := childStack.At(parent.Depth + 1)
		if child == nil {
			return 0, cursor, ErrExpectedTLV
		}

		room := limit - pos
		if room < 3 {
			break
		}

		var (
			n    int
			next *AVP
		)
		if child.Kind == raddict.KindTLV {
			n, next, err = encodeTLVContainer(scratch[pos:], pkt, child, cur)
		} else {
			n, err = encodeRFC(scratch[pos:], pkt, childStack, cur)
			next = cur.Next
		}
		if err != nil {
			return 0, cursor, err
		}
		if n == 0 {
			break // Child didn't fit: container is done with what it has.
		}

		pos += n
		cur = next
	}

	if pos == 2 {
		return 0, cursor, ErrEmptyTLV
	}
	if pos-2 > 253 {
		return 0, cursor, ErrExpectedTLV
	}

	scratch[0] = uint8(parent.Attr) //nolint:gosec // G115: TLV attr numbers fit a byte by dictionary construction
	scratch[1] = uint8(pos)         //nolint:gosec // G115: pos <= limit <= 255

	copy(out, scratch[:pos])
	return pos, cur, nil
}
