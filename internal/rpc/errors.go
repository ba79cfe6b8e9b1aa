package rpc

import (
	"fmt"

	"github.com/gravitational/trace"
)

// PacketError reports a malformed frame or header: bad length, unknown
// msg_type, unknown status code. Per spec, any of these is fatal to the
// connection that produced them.
type PacketError struct {
	Op  string
	err error
}

func (e *PacketError) Error() string {
	return fmt.Sprintf("rpc: %s: %v", e.Op, e.err)
}

func (e *PacketError) Unwrap() error {
	return e.err
}

func packetErr(op string, err error) error {
	return &PacketError{Op: op, err: trace.Wrap(err)}
}

// BadHeaderLength reports a header buffer that is not exactly HeaderLength bytes.
func BadHeaderLength(n int) error {
	return packetErr("decode header", trace.BadParameter("header is %d bytes, want %d", n, HeaderLength))
}

// UnknownMsgType reports a header `type` field outside Call/Reply/Message/Stream.
func UnknownMsgType(v uint32) error {
	return packetErr("decode header", trace.BadParameter("unknown msg_type %d", v))
}

// UnknownStatus reports a header `status` field outside Ok/Error/Continue.
func UnknownStatus(v uint32) error {
	return packetErr("decode header", trace.BadParameter("unknown status %d", v))
}

// FrameTooLarge reports an encoded frame that would exceed MaxFrameLength.
func FrameTooLarge(total, max int) error {
	return packetErr("encode frame", trace.BadParameter("frame length %d exceeds maximum %d", total, max))
}

// FrameTooShort reports a frame shorter than the minimum length+header size.
func FrameTooShort(n int) error {
	return packetErr("decode frame", trace.BadParameter("frame is %d bytes, shorter than the %d-byte length+header minimum", n, LengthPrefixLength+HeaderLength))
}

// FrameLengthMismatch reports a frame whose declared length prefix does not
// match the number of bytes actually read for it.
func FrameLengthMismatch(declared, actual int) error {
	return packetErr("decode frame", trace.BadParameter("frame declares length %d, got %d bytes", declared, actual))
}

// ReplyError reports that the daemon answered a call with status=Error.
// Payload carries whatever error body the daemon sent, still encoded; the
// generated client's decodeCallError (gen/remote) decodes it as a
// RemoteError.
type ReplyError struct {
	Status  Status
	Payload []byte
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("rpc: call failed with status %s", e.Status)
}

// ReplyStatusError wraps a non-Ok reply status into a ReplyError.
func ReplyStatusError(status Status, payload []byte) error {
	return &ReplyError{Status: status, Payload: payload}
}

// ConnectionError reports a transport-level failure on an established
// connection: a read/write I/O error, or the connection being closed while
// calls are still outstanding.
type ConnectionError struct {
	Op  string
	err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("rpc: connection: %s: %v", e.Op, e.err)
}

func (e *ConnectionError) Unwrap() error {
	return e.err
}

// ConnClosed reports a Call that failed because the connection's read or
// write loop exited, carrying the error that caused the exit (nil if the
// connection was closed cleanly by the caller).
func ConnClosed(cause error) error {
	if cause == nil {
		cause = trace.Errorf("connection closed")
	}
	return &ConnectionError{Op: "call", err: trace.Wrap(cause)}
}

// DialFailed wraps a transport dial failure.
func DialFailed(addr string, err error) error {
	return &ConnectionError{Op: fmt.Sprintf("dial %s", addr), err: trace.Wrap(err)}
}

// WriteFailed wraps a write-loop I/O failure.
func WriteFailed(err error) error {
	return &ConnectionError{Op: "write", err: trace.Wrap(err)}
}

// ReadFailed wraps a read-loop I/O failure.
func ReadFailed(err error) error {
	return &ConnectionError{Op: "read", err: trace.Wrap(err)}
}
