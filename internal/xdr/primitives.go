package xdr

import (
	"encoding/binary"
	"io"
	"unicode/utf8"
)

// ============================================================================
// XDR Primitive Encoding - Go Types -> Wire Format
// ============================================================================

// WriteUint32 encodes a 32-bit unsigned integer in XDR format.
//
// Per RFC 4506 Section 4.1 (Integer): unsigned 32-bit integers are encoded
// in big-endian byte order.
func WriteUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	if _, err := w.Write(b[:]); err != nil {
		return wrapf("write uint32", err)
	}
	return nil
}

// WriteUint64 encodes a 64-bit unsigned integer in XDR format.
//
// Per RFC 4506 Section 4.5 (Hyper Integer).
func WriteUint64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	if _, err := w.Write(b[:]); err != nil {
		return wrapf("write uint64", err)
	}
	return nil
}

// WriteInt32 encodes a 32-bit signed integer in XDR format (two's complement).
func WriteInt32(w io.Writer, v int32) error {
	return WriteUint32(w, uint32(v))
}

// WriteInt64 encodes a 64-bit signed integer in XDR format (two's complement).
func WriteInt64(w io.Writer, v int64) error {
	return WriteUint64(w, uint64(v))
}

// WriteBool encodes a boolean as a uint32: 0 for false, 1 for true.
//
// Per RFC 4506 Section 4.4 (Boolean).
func WriteBool(w io.Writer, v bool) error {
	var val uint32
	if v {
		val = 1
	}
	return WriteUint32(w, val)
}

// WritePadding writes the 0-3 zero bytes needed to align dataLen onto a
// 4-byte boundary.
//
// Padding formula: (4 - (dataLen % 4)) % 4.
func WritePadding(w io.Writer, dataLen uint32) error {
	padding := (4 - (dataLen % 4)) % 4
	if padding == 0 {
		return nil
	}
	var padBuf [3]byte
	if _, err := w.Write(padBuf[:padding]); err != nil {
		return wrapf("write padding", err)
	}
	return nil
}

// WriteOpaque encodes variable-length opaque data: length + data + padding.
//
// Per RFC 4506 Section 4.10 (Variable-Length Opaque Data).
func WriteOpaque(w io.Writer, data []byte) error {
	length := uint32(len(data))
	if err := WriteUint32(w, length); err != nil {
		return wrapf("write opaque length", err)
	}
	if _, err := w.Write(data); err != nil {
		return wrapf("write opaque data", err)
	}
	return WritePadding(w, length)
}

// WriteFixedOpaque encodes fixed-length opaque data: data + padding, with no
// length prefix (the length is implied by the IDL type, e.g. opaque[16]).
//
// Per RFC 4506 Section 4.9 (Fixed-Length Opaque Data).
func WriteFixedOpaque(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return wrapf("write fixed opaque data", err)
	}
	return WritePadding(w, uint32(len(data)))
}

// WriteString encodes a string using the same length+data+padding layout as
// opaque data.
//
// Per RFC 4506 Section 4.11 (String).
func WriteString(w io.Writer, s string) error {
	return WriteOpaque(w, []byte(s))
}

// ============================================================================
// XDR Primitive Decoding - Wire Format -> Go Types
// ============================================================================

// ReadUint32 decodes a 32-bit unsigned integer from XDR format.
func ReadUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, Eof("read uint32", err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadUint64 decodes a 64-bit unsigned integer from XDR format.
func ReadUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, Eof("read uint64", err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadInt32 decodes a 32-bit signed integer from XDR format.
func ReadInt32(r io.Reader) (int32, error) {
	v, err := ReadUint32(r)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ReadInt64 decodes a 64-bit signed integer from XDR format.
func ReadInt64(r io.Reader) (int64, error) {
	v, err := ReadUint64(r)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// ReadBool decodes an XDR boolean. Per RFC 4506 the wire value must be
// exactly 0 or 1; anything else is rejected rather than treated as truthy,
// matching the strictness spec.md requires of this codec.
func ReadBool(r io.Reader) (bool, error) {
	v, err := ReadUint32(r)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, InvalidBool(v)
	}
}

// ReadPadding discards the 0-3 padding bytes following a dataLen-byte field.
func ReadPadding(r io.Reader, dataLen uint32) error {
	padding := (4 - (dataLen % 4)) % 4
	if padding == 0 {
		return nil
	}
	var padBuf [3]byte
	if _, err := io.ReadFull(r, padBuf[:padding]); err != nil {
		return Eof("read padding", err)
	}
	return nil
}

// ReadOpaque decodes variable-length opaque data: length + data + padding,
// rejecting any length greater than MaxOpaqueLength.
func ReadOpaque(r io.Reader) ([]byte, error) {
	length, err := ReadUint32(r)
	if err != nil {
		return nil, wrapf("read opaque length", err)
	}
	if length > MaxOpaqueLength {
		return nil, LengthExceeded("read opaque", length, MaxOpaqueLength)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, Eof("read opaque data", err)
	}

	if err := ReadPadding(r, length); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadFixedOpaque decodes exactly n bytes of fixed-length opaque data plus
// its padding, with no length prefix on the wire.
func ReadFixedOpaque(r io.Reader, n int) ([]byte, error) {
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, Eof("read fixed opaque data", err)
	}
	if err := ReadPadding(r, uint32(n)); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadString decodes an XDR string using the opaque-data layout, rejecting
// any payload that is not valid UTF-8.
func ReadString(r io.Reader) (string, error) {
	data, err := ReadOpaque(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", InvalidUTF8("string")
	}
	return string(data), nil
}
