package xdr

import (
	"io"

	"github.com/google/uuid"
)

// UUID wraps google/uuid.UUID so generated types have parse/format/compare
// for free wherever the IDL declares a fixed opaque[16] field (libvirt's
// VIR_UUID_BUFLEN), instead of carrying a bare [16]byte around the codebase.
type UUID struct {
	uuid.UUID
}

// Encode writes the UUID as 16 bytes of fixed-length opaque data. A UUID's
// length is always a multiple of 4 so WriteFixedOpaque never adds padding,
// but the call stays in place for symmetry with ReadUUID and any future
// fixed-opaque field of non-multiple-of-4 length.
func (u UUID) Encode(w io.Writer) error {
	return WriteFixedOpaque(w, u.UUID[:])
}

// ReadUUID decodes a 16-byte fixed opaque UUID field.
func ReadUUID(r io.Reader) (UUID, error) {
	data, err := ReadFixedOpaque(r, UUIDLength)
	if err != nil {
		return UUID{}, err
	}
	var u UUID
	copy(u.UUID[:], data)
	return u, nil
}
