// Package xdr provides XDR (External Data Representation) encoding and
// decoding utilities per RFC 4506.
//
// XDR is the standard data serialization format used by Sun RPC protocols,
// including the libvirt remote protocol. This package provides the
// primitive codec (big-endian integers, padded opaque/string data, boolean
// and discriminated-union helpers) that generated code and the reflective
// bridge in reflect.go build on.
//
// Key characteristics of XDR:
//   - Big-endian byte order for all multi-byte integers
//   - 4-byte alignment for all data types
//   - Variable-length data is preceded by a 4-byte length
//   - Fixed-length opaque data (e.g. a 16-byte UUID) has no length prefix
//
// Reference: RFC 4506 - XDR: External Data Representation Standard
// https://tools.ietf.org/html/rfc4506
package xdr

// MaxOpaqueLength bounds any single variable-length opaque or string field
// decoded off the wire. The libvirt remote protocol caps its own variable
// arrays far below this; this is a blanket guard against a malicious or
// corrupt peer forcing an unbounded allocation.
const MaxOpaqueLength = 4 * 1024 * 1024

// UUIDLength is the fixed size in bytes of a libvirt UUID (VIR_UUID_BUFLEN).
const UUIDLength = 16
