// Package transport implements the byte-oriented connections the RPC engine
// dials. A Transport exposes exactly the three operations the engine needs:
// send one already-framed message, receive one complete frame, and close.
// Framing — the length-prefix read, then body read — is performed inside
// the transport's receive path; Send is a raw write of bytes the engine has
// already framed.
package transport

// Transport is satisfied by every connection kind the engine can dial.
// internal/rpc.Connection depends on an equivalent unexported-field
// interface of the same shape; this type exists so callers outside
// internal/rpc (tests, alternate transports) have something concrete to
// name.
type Transport interface {
	Send(frame []byte) error
	Recv() ([]byte, error)
	Close() error
}
