package xdr

import "io"

// ============================================================================
// XDR Codec Interfaces
// ============================================================================

// Encoder is implemented by generated types that encode themselves to XDR.
// Generated union types and any type carrying a fixed-length opaque field
// implement this directly instead of going through the reflective bridge.
type Encoder interface {
	Encode(w io.Writer) error
}

// Decoder is implemented by generated types that decode themselves from XDR.
type Decoder interface {
	Decode(r io.Reader) error
}

// ============================================================================
// XDR Discriminated Union Helpers
// ============================================================================

// WriteUnionDiscriminant writes the uint32 discriminant of an XDR union.
// This is an alias for WriteUint32 that makes generated union Encode methods
// self-documenting.
//
// Per RFC 4506 Section 4.15 (Discriminated Unions): the discriminant is
// always encoded as a uint32 before the selected arm's data.
func WriteUnionDiscriminant(w io.Writer, disc uint32) error {
	return WriteUint32(w, disc)
}

// ReadUnionDiscriminant reads the uint32 discriminant of an XDR union.
func ReadUnionDiscriminant(r io.Reader) (uint32, error) {
	return ReadUint32(r)
}
