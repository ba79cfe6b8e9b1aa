package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging.
// These keys cover the RPC transport, codec, and client-facade layers.
// Use these keys consistently across all log statements for log aggregation and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// RPC Program & Procedure
	// ========================================================================
	KeyProgram       = "program"        // RPC program number (remote, QEMU, LXC)
	KeyProgramVers   = "program_vers"   // RPC program version
	KeyProcedure     = "procedure"      // Procedure name (connect_open, domain_lookup_by_name, ...)
	KeyProcedureNum  = "procedure_num"  // Procedure number within the program
	KeyMsgType       = "msg_type"       // RPC message type: call or reply
	KeyStatus        = "status"         // accept_stat / reject_stat value
	KeyStatusMsg     = "status_msg"     // Human-readable status message

	// ========================================================================
	// Serial / XID Correlation
	// ========================================================================
	KeySerial     = "serial"      // Client-assigned serial used as the XID
	KeyXID        = "xid"         // Wire transaction ID echoed back by the peer
	KeyPending    = "pending"     // Number of calls currently awaiting a reply

	// ========================================================================
	// Wire Framing
	// ========================================================================
	KeyFrameLen  = "frame_len"  // Record-marking fragment length in bytes
	KeyLastFrag  = "last_frag"  // Whether this fragment is the final one
	KeyFrames    = "frames"     // Number of fragments assembled into one message

	// ========================================================================
	// Connection & Transport
	// ========================================================================
	KeyRemoteAddr   = "remote_addr"   // Transport peer address (unix socket path, etc.)
	KeyURI          = "uri"           // Connection URI as given by the caller
	KeySocketPath   = "socket_path"   // Resolved Unix domain socket path
	KeyConnectionID = "connection_id" // Connection identifier
	KeyDialTimeout  = "dial_timeout"  // Dial timeout applied to the transport

	// ========================================================================
	// Authentication
	// ========================================================================
	KeyAuthFlavor = "auth_flavor" // RPC auth flavor: AUTH_NONE, AUTH_UNIX, ...
	KeyUID        = "uid"         // Unix UID carried in AUTH_UNIX credentials
	KeyGID        = "gid"         // Unix GID carried in AUTH_UNIX credentials
	KeyMachine    = "machine"     // Machine name carried in AUTH_UNIX credentials

	// ========================================================================
	// Codec
	// ========================================================================
	KeyTypeName  = "type_name"  // IDL type name being encoded/decoded
	KeyByteLen   = "byte_len"   // Byte length of an encoded/decoded value
	KeyUUID      = "uuid"       // Domain/storage-pool/network UUID

	// ========================================================================
	// IDL / Code Generation
	// ========================================================================
	KeySourceFile = "source_file" // IDL (.x) source file being parsed
	KeyLine       = "line"        // Line number within the IDL source
	KeyOutputFile = "output_file" // Generated Go source file path

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorCode  = "error_code"  // Numeric error code
	KeyAttempt    = "attempt"     // Retry attempt number
	KeyMaxRetries = "max_retries" // Maximum retry attempts

	// ========================================================================
	// libvirt Remote Error Payload
	// ========================================================================
	KeyRemoteErrCode   = "remote_err_code"   // remote_error code field
	KeyRemoteErrDomain = "remote_err_domain" // remote_error domain field
	KeyRemoteErrLevel  = "remote_err_level"  // remote_error level field
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// ----------------------------------------------------------------------------
// Distributed Tracing
// ----------------------------------------------------------------------------

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// ----------------------------------------------------------------------------
// RPC Program & Procedure
// ----------------------------------------------------------------------------

// Program returns a slog.Attr for the RPC program number
func Program(prog uint32) slog.Attr {
	return slog.Any(KeyProgram, prog)
}

// ProgramVers returns a slog.Attr for the RPC program version
func ProgramVers(vers uint32) slog.Attr {
	return slog.Any(KeyProgramVers, vers)
}

// Procedure returns a slog.Attr for the procedure name
func Procedure(name string) slog.Attr {
	return slog.String(KeyProcedure, name)
}

// ProcedureNum returns a slog.Attr for the procedure number
func ProcedureNum(num uint32) slog.Attr {
	return slog.Any(KeyProcedureNum, num)
}

// MsgType returns a slog.Attr for the RPC message type
func MsgType(t string) slog.Attr {
	return slog.String(KeyMsgType, t)
}

// Status returns a slog.Attr for the accept_stat/reject_stat value
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// StatusMsg returns a slog.Attr for a human-readable status message
func StatusMsg(msg string) slog.Attr {
	return slog.String(KeyStatusMsg, msg)
}

// ----------------------------------------------------------------------------
// Serial / XID Correlation
// ----------------------------------------------------------------------------

// Serial returns a slog.Attr for the client-assigned call serial
func Serial(serial int32) slog.Attr {
	return slog.Int(KeySerial, int(serial))
}

// XID returns a slog.Attr for the wire transaction ID
func XID(xid uint32) slog.Attr {
	return slog.Any(KeyXID, xid)
}

// Pending returns a slog.Attr for the number of in-flight calls
func Pending(n int) slog.Attr {
	return slog.Int(KeyPending, n)
}

// ----------------------------------------------------------------------------
// Wire Framing
// ----------------------------------------------------------------------------

// FrameLen returns a slog.Attr for a fragment's length in bytes
func FrameLen(n uint32) slog.Attr {
	return slog.Any(KeyFrameLen, n)
}

// LastFrag returns a slog.Attr for the last-fragment marker
func LastFrag(last bool) slog.Attr {
	return slog.Bool(KeyLastFrag, last)
}

// Frames returns a slog.Attr for the number of fragments assembled
func Frames(n int) slog.Attr {
	return slog.Int(KeyFrames, n)
}

// ----------------------------------------------------------------------------
// Connection & Transport
// ----------------------------------------------------------------------------

// RemoteAddr returns a slog.Attr for the transport peer address
func RemoteAddr(addr string) slog.Attr {
	return slog.String(KeyRemoteAddr, addr)
}

// URI returns a slog.Attr for the connection URI
func URI(uri string) slog.Attr {
	return slog.String(KeyURI, uri)
}

// SocketPath returns a slog.Attr for the resolved Unix socket path
func SocketPath(path string) slog.Attr {
	return slog.String(KeySocketPath, path)
}

// ConnectionID returns a slog.Attr for a connection identifier
func ConnectionID(id string) slog.Attr {
	return slog.String(KeyConnectionID, id)
}

// DialTimeout returns a slog.Attr for the dial timeout applied
func DialTimeout(d fmt.Stringer) slog.Attr {
	return slog.String(KeyDialTimeout, d.String())
}

// ----------------------------------------------------------------------------
// Authentication
// ----------------------------------------------------------------------------

// AuthFlavor returns a slog.Attr for the RPC auth flavor
func AuthFlavor(flavor uint32) slog.Attr {
	return slog.Any(KeyAuthFlavor, flavor)
}

// UID returns a slog.Attr for a Unix UID
func UID(uid uint32) slog.Attr {
	return slog.Any(KeyUID, uid)
}

// GID returns a slog.Attr for a Unix GID
func GID(gid uint32) slog.Attr {
	return slog.Any(KeyGID, gid)
}

// Machine returns a slog.Attr for the AUTH_UNIX machine name
func Machine(name string) slog.Attr {
	return slog.String(KeyMachine, name)
}

// ----------------------------------------------------------------------------
// Codec
// ----------------------------------------------------------------------------

// TypeName returns a slog.Attr for an IDL type name
func TypeName(name string) slog.Attr {
	return slog.String(KeyTypeName, name)
}

// ByteLen returns a slog.Attr for an encoded/decoded byte length
func ByteLen(n int) slog.Attr {
	return slog.Int(KeyByteLen, n)
}

// UUID returns a slog.Attr for a UUID value, formatted via its Stringer
func UUID(u fmt.Stringer) slog.Attr {
	return slog.String(KeyUUID, u.String())
}

// ----------------------------------------------------------------------------
// IDL / Code Generation
// ----------------------------------------------------------------------------

// SourceFile returns a slog.Attr for an IDL source file path
func SourceFile(path string) slog.Attr {
	return slog.String(KeySourceFile, path)
}

// Line returns a slog.Attr for a line number within an IDL source file
func Line(n int) slog.Attr {
	return slog.Int(KeyLine, n)
}

// OutputFile returns a slog.Attr for a generated Go source file path
func OutputFile(path string) slog.Attr {
	return slog.String(KeyOutputFile, path)
}

// ----------------------------------------------------------------------------
// Operation Metadata
// ----------------------------------------------------------------------------

// DurationMs returns a slog.Attr for an operation duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error value, or an empty slog.Attr for nil
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a numeric error code
func ErrorCode(code int) slog.Attr {
	return slog.Int(KeyErrorCode, code)
}

// Attempt returns a slog.Attr for a retry attempt number
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// MaxRetries returns a slog.Attr for the maximum retry attempts
func MaxRetries(n int) slog.Attr {
	return slog.Int(KeyMaxRetries, n)
}

// ----------------------------------------------------------------------------
// libvirt Remote Error Payload
// ----------------------------------------------------------------------------

// RemoteErrCode returns a slog.Attr for the remote_error code field
func RemoteErrCode(code int32) slog.Attr {
	return slog.Int(KeyRemoteErrCode, int(code))
}

// RemoteErrDomain returns a slog.Attr for the remote_error domain field
func RemoteErrDomain(domain int32) slog.Attr {
	return slog.Int(KeyRemoteErrDomain, int(domain))
}

// RemoteErrLevel returns a slog.Attr for the remote_error level field
func RemoteErrLevel(level int32) slog.Attr {
	return slog.Int(KeyRemoteErrLevel, int(level))
}
