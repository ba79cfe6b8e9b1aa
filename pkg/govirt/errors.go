package govirt

import (
	"fmt"

	"github.com/gravitational/trace"

	"github.com/coriolis-systems/govirt/gen/remote"
)

// ConnectionError is the top-level error taxonomy a Client surfaces:
// a local I/O failure, an unsupported connection URI, a connection that
// closed while calls were outstanding, an authentication failure, a
// protocol-level mismatch, or a structured error the daemon itself
// returned. Callers that need to distinguish "my call couldn't reach the
// daemon" from "the daemon rejected my call" should type-switch on err.
type ConnectionError struct {
	Kind    string
	Reason  string
	Cause   error
	Daemon  *remote.RemoteError
}

func (e *ConnectionError) Error() string {
	switch {
	case e.Daemon != nil:
		return fmt.Sprintf("govirt: remote error: %s (code %d, domain %d)", e.Daemon.Message, e.Daemon.Code, e.Daemon.Domain)
	case e.Cause != nil:
		return fmt.Sprintf("govirt: %s: %v", e.Kind, e.Cause)
	default:
		return fmt.Sprintf("govirt: %s: %s", e.Kind, e.Reason)
	}
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// UnsupportedURI reports a connection URI whose scheme this client does
// not know how to dial.
func UnsupportedURI(uri string) error {
	return &ConnectionError{Kind: "UnsupportedUri", Reason: uri}
}

// IoFailure wraps a local I/O error (dial, send, recv) that prevented a
// call from reaching or returning from the daemon.
func IoFailure(cause error) error {
	return &ConnectionError{Kind: "Io", Cause: trace.Wrap(cause)}
}

// AuthFailed reports that none of the daemon's offered auth mechanisms
// could be satisfied during connect.
func AuthFailed(reason string) error {
	return &ConnectionError{Kind: "AuthFailed", Reason: reason}
}

// ProtocolError reports a connect-time handshake mismatch (e.g. an
// unexpected AUTH_LIST response shape).
func ProtocolError(reason string) error {
	return &ConnectionError{Kind: "Protocol", Reason: reason}
}

// RemoteErrorFrom wraps a decoded RemoteError payload from the daemon so
// callers can distinguish a rejected call from a local transport failure.
func RemoteErrorFrom(daemon *remote.RemoteError) error {
	return &ConnectionError{Kind: "RemoteError", Daemon: daemon}
}
