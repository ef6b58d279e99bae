package radius

import (
	"errors"
	"fmt"
)

// Sentinel errors for the encoder's failure taxonomy, ordered
// by severity. Truncated, NoRoom, and ValueIgnored are NOT represented as
// errors: they are control-flow outcomes signaled through the returned
// byte count and an unchanged/advanced cursor: silently truncated is not
// an error, a full buffer returns 0 with the cursor unchanged, and a
// skipped value returns 0 with the cursor advanced.
var (
	// ErrStackOverflow indicates a descriptor's depth exceeds
	// raddict.MaxTLVStack. Fatal; caller should drop the AVP.
	ErrStackOverflow = errors.New("radius: descriptor depth exceeds MaxTLVStack")

	// ErrNilCursor indicates EncodePair was called with a nil cursor.
	ErrNilCursor = errors.New("radius: nil cursor")

	// ErrNilValue indicates an AVP has no data to encode.
	ErrNilValue = errors.New("radius: nil attribute value")

	// ErrEVSAtTop indicates an EVS descriptor was selected as the outermost
	// attribute; EVS is only valid nested inside an Extended attribute.
	ErrEVSAtTop = errors.New("radius: EVS descriptor not valid at top level")

	// ErrExpectedTLV indicates a TLV-shaped AVP was expected but the
	// descriptor or AVP did not describe one.
	ErrExpectedTLV = errors.New("radius: expected TLV attribute")

	// ErrEmptyTLV indicates a TLV parent has no children to encode.
	ErrEmptyTLV = errors.New("radius: empty TLV parent")

	// ErrDescriptorMismatch indicates the TLV stack's leaf does not match
	// the AVP's own descriptor.
	ErrDescriptorMismatch = errors.New("radius: stack leaf does not match AVP descriptor")

	// ErrUnknownVendorWidths indicates a Vendor descriptor specifies a
	// type/length width combination the encoder does not support.
	ErrUnknownVendorWidths = errors.New("radius: unsupported vendor type/length width")

	// ErrUnknownValueKind indicates a leaf's ValueKind has no encoding rule.
	ErrUnknownValueKind = errors.New("radius: unknown leaf value kind")

	// ErrEncryptedValueTooLong indicates a value subject to encryption
	// exceeds the 128 cleartext-octet limit.
	ErrEncryptedValueTooLong = errors.New("radius: encrypted value exceeds 128 octets")

	// ErrAscendSecretLength indicates an Ascend-Secret value is not
	// exactly 16 cleartext octets.
	ErrAscendSecretLength = errors.New("radius: ascend-secret value must be 16 octets")

	// ErrTooLargeToEncode indicates the dispatch entry made no progress
	// encoding the current AVP.
	ErrTooLargeToEncode = errors.New("radius: attribute too large to encode")
)

// EncodeError names the attribute EncodePair was working on when Err
// occurred, so a log line or CLI error doesn't require cross-referencing
// a bare sentinel back to a dictionary number.
type EncodeError struct {
	// Attr is the failing attribute's dictionary name, or "attr-<number>"
	// built from its numeric attribute number if the dictionary carries
	// no name for it.
	Attr string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("radius: encode %s: %v", e.Attr, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// wrapEncodeErr names err against cursor's descriptor. A nil err, nil
// cursor, or nil descriptor passes through unchanged — EncodePair's
// ErrNilCursor case has no attribute to name.
func wrapEncodeErr(cursor *AVP, err error) error {
	if err == nil || cursor == nil || cursor.Descriptor == nil {
		return err
	}
	name := cursor.Descriptor.Name
	if name == "" {
		name = fmt.Sprintf("attr-%d", cursor.Descriptor.Attr)
	}
	return &EncodeError{Attr: name, Err: err}
}
