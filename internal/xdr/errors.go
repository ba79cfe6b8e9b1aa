package xdr

import (
	"fmt"

	"github.com/gravitational/trace"
)

// CodecError is returned by every encode/decode helper in this package.
// It always wraps a cause via trace.Wrap so callers get a stack-annotated
// error without having to add their own context at each call site.
type CodecError struct {
	// Op names the operation that failed, e.g. "decode uint32", "encode opaque".
	Op string
	err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("xdr: %s: %v", e.Op, e.err)
}

func (e *CodecError) Unwrap() error {
	return e.err
}

func wrapf(op string, err error) error {
	return &CodecError{Op: op, err: trace.Wrap(err)}
}

// Eof reports a short read while decoding op.
func Eof(op string, err error) error {
	return wrapf(op, trace.Wrap(err, "unexpected end of data"))
}

// InvalidBool reports an XDR boolean whose wire value was neither 0 nor 1.
func InvalidBool(v uint32) error {
	return wrapf("decode bool", trace.BadParameter("invalid boolean value %d, must be 0 or 1", v))
}

// InvalidUTF8 reports a decoded string that is not valid UTF-8.
func InvalidUTF8(field string) error {
	return wrapf("decode string", trace.BadParameter("field %q is not valid UTF-8", field))
}

// LengthExceeded reports an opaque/string/array length that exceeds MaxOpaqueLength.
func LengthExceeded(op string, length, max uint32) error {
	return wrapf(op, trace.BadParameter("length %d exceeds maximum %d", length, max))
}

// TrailingData reports leftover bytes after decoding a fixed-shape message.
func TrailingData(op string, n int) error {
	return wrapf(op, trace.BadParameter("%d trailing bytes after decode", n))
}
