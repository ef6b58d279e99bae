package radius

import radmetrics "github.com/dantte-lp/goradius/internal/metrics"

// -------------------------------------------------------------------------
// C9 — Fragmenter
// -------------------------------------------------------------------------

// recordFragments reports every sibling attribute beyond the first that
// fragment wrote, derived from the written total rather than re-deriving
// fragment's own ceil-division so the two never drift apart.
func recordFragments(m *radmetrics.Collector, kind string, hdrLen, valueLen, written int) {
	numFrags := (written - valueLen) / hdrLen
	for i := 1; i < numFrags; i++ {
		m.IncFragments(kind)
	}
}

// fragment splits value across sibling attributes that each repeat
// headerTemplate, each capped at 255 total octets, bookkeeping a
// continuation/M bit on every predecessor.
//
// It builds the fragmented sequence directly from headerTemplate and
// value in two passes — a capacity check, then the layout — rather than
// writing a first fragment and relaying it out in place once a second
// fragment turns out to be needed.
//
//   - lenOffset is the index within headerTemplate of the attribute's own
//     length byte (always 1 for RFC/Extended/VSA headers).
//   - flagOffset is the index of the continuation/M bit.
//   - vsaOffset is the index of a secondary inner-length byte to patch
//     with 3+payloadLen (WiMAX's inner VSA length), or 0 if the header has
//     no such field.
//
// Returns the number of bytes written. A return of 0 with a nil error is
// a partial encode: the caller leaves the cursor
// unchanged and retries after flushing the buffer.
func fragment(out []byte, headerTemplate []byte, lenOffset, flagOffset, vsaOffset int, value []byte) (int, error) {
	hdrLen := len(headerTemplate)
	payloadCap := 255 - hdrLen
	if payloadCap <= 0 {
		return 0, ErrTooLargeToEncode
	}

	numFrags := (len(value) + payloadCap - 1) / payloadCap
	if numFrags == 0 {
		numFrags = 1
	}

	// Pass 1 — capacity check
	totalLen := len(value) + numFrags*hdrLen
	if totalLen > len(out) {
		return 0, nil
	}

	// Pass 2 — re-layout: emit each fragment's header followed by its
	// payload slice, setting the continuation bit on every fragment but
	// the last
	cursor := 0
	for i := range numFrags {
		remaining := len(value) - i*payloadCap
		payloadLen := payloadCap
		if payloadLen > remaining {
			payloadLen = remaining
		}

		hdr := out[cursor : cursor+hdrLen]
		copy(hdr, headerTemplate)
		hdr[lenOffset] = uint8(hdrLen + payloadLen) //nolint:gosec // G115: hdrLen+payloadLen <= 255 by construction
		if vsaOffset != 0 {
			hdr[vsaOffset] = uint8(3 + payloadLen) //nolint:gosec // G115: 3+payloadLen <= 255 by construction
		}
		if i < numFrags-1 {
			hdr[flagOffset] |= 0x80
		} else {
			hdr[flagOffset] &^= 0x80
		}

		copy(out[cursor+hdrLen:], value[i*payloadCap:i*payloadCap+payloadLen])
		cursor += hdrLen + payloadLen
	}

	return cursor, nil
}
