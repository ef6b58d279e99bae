package radius

import (
	radmetrics "github.com/dantte-lp/goradius/internal/metrics"
	"github.com/dantte-lp/goradius/internal/raddict"
)

// RADIUS codes relevant to Tunnel-Password vector selection and
// Message-Authenticator placeholder emission.
const (
	CodeAccessRequest      = 1
	CodeAccessAccept       = 2
	CodeAccessReject       = 3
	CodeAccountingRequest  = 4
	CodeAccountingResponse = 5
	CodeAccessChallenge    = 11
	CodeStatusServer       = 12
	CodeStatusClient       = 13
)

// isRequestCode reports whether code identifies a request (as opposed to a
// reply) packet, per the RFC 2865 §3 request/response codes the
// Tunnel-Password vector-selection rule distinguishes between.
func isRequestCode(code uint8) bool {
	switch code {
	case CodeAccessRequest, CodeAccountingRequest, CodeStatusServer, CodeStatusClient:
		return true
	default:
		return false
	}
}

// PacketCtx is the read-only context the encoder consumes for one packet.
type PacketCtx struct {
	// Code is the RADIUS code (Access-Request=1, Access-Accept=2,
	// Accounting-Request=4, ...).
	Code uint8

	// Authenticator is the 16-byte authenticator: the request vector for
	// requests, or the vector the caller's packet builder assigned for a
	// not-yet-signed reply.
	Authenticator [16]byte

	// Secret is the shared secret used by the encryption kernels (C1).
	Secret string

	// Original is, for reply packets, the corresponding request — its
	// Authenticator supplies the vector for password encryption. Nil for
	// request packets.
	Original *PacketCtx

	// Vendors resolves enterprise numbers to their inner type/length
	// widths for the VSA and WiMAX encoders. Nil is treated as an empty
	// table: every vendor falls back to RFC framing.
	Vendors raddict.VendorTable

	// Metrics receives fragmentation and truncation counts as the encoder
	// walks this packet's attributes. Nil disables instrumentation.
	Metrics *radmetrics.Collector
}

// vectorFor returns the 16-byte authenticator the encryption kernels must
// use for this packet: request codes use the packet's own authenticator,
// reply codes use the original request's authenticator.
func (p *PacketCtx) vectorFor() [16]byte {
	if isRequestCode(p.Code) || p.Original == nil {
		return p.Authenticator
	}
	return p.Original.Authenticator
}
