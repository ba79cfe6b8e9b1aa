package xdr

import (
	"io"

	xdr2 "github.com/rasky/go-xdr/xdr2"
)

// MarshalStruct encodes v using the reflective xdr2 codec. This is the
// realization of spec.md's "reflective encoder/decoder" for the majority of
// libvirt RPC argument/return types: plain structs with no discriminated
// union and no fixed-length opaque field (those fall back to generated
// explicit Encode/Decode methods built on this package's primitives).
func MarshalStruct(w io.Writer, v any) error {
	if _, err := xdr2.Marshal(w, v); err != nil {
		return wrapf("marshal struct", err)
	}
	return nil
}

// UnmarshalStruct decodes into v using the reflective xdr2 codec.
func UnmarshalStruct(r io.Reader, v any) error {
	if _, err := xdr2.Unmarshal(r, v); err != nil {
		return wrapf("unmarshal struct", err)
	}
	return nil
}
