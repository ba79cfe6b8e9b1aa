package transport

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gravitational/trace"

	"github.com/coriolis-systems/govirt/internal/logger"
)

// MaxFrameLength mirrors internal/rpc.MaxFrameLength: the largest frame
// this transport will allocate a buffer for on the receive path. Duplicated
// rather than imported so this package stays free of a dependency on the
// engine it is dialed by.
const MaxFrameLength = 4 * 1024 * 1024

// lengthPrefixLength is the size of the frame length prefix read off the wire.
const lengthPrefixLength = 4

// Unix is a client-side Unix domain socket transport. Framing is performed
// on the receive path: a 4-byte big-endian length (including itself) is
// read first, then exactly that many bytes minus the prefix.
type Unix struct {
	conn net.Conn

	writeMu sync.Mutex
}

// DialUnix connects to a Unix domain socket at path, honoring ctx for the
// dial itself (not for subsequent Send/Recv calls, which block on the
// established connection).
func DialUnix(ctx context.Context, path string, dialTimeout time.Duration) (*Unix, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, trace.Wrap(err, "dial unix socket %s", path)
	}
	logger.Debug("transport: dialed unix socket", logger.SocketPath(path))
	return &Unix{conn: conn}, nil
}

// Send writes frame to the socket. Concurrent Send calls are serialized so
// two writers can never interleave partial frames on the wire, though the
// engine already holds its own write lock and is expected to be the only
// caller in practice.
func (u *Unix) Send(frame []byte) error {
	u.writeMu.Lock()
	defer u.writeMu.Unlock()
	_, err := u.conn.Write(frame)
	if err != nil {
		return trace.Wrap(err, "write frame")
	}
	return nil
}

// Recv reads one complete frame: a 4-byte big-endian total length
// (including itself), then the remaining length-4 bytes. A declared length
// outside (lengthPrefixLength, MaxFrameLength] is treated as a malformed
// frame and returned as an error without attempting to read a body.
func (u *Unix) Recv() ([]byte, error) {
	var lenBuf [lengthPrefixLength]byte
	if _, err := io.ReadFull(u.conn, lenBuf[:]); err != nil {
		return nil, trace.Wrap(err, "read frame length")
	}

	total := binary.BigEndian.Uint32(lenBuf[:])
	if total <= lengthPrefixLength || total > MaxFrameLength {
		return nil, trace.BadParameter("frame length %d outside valid range (%d, %d]", total, lengthPrefixLength, MaxFrameLength)
	}

	frame := make([]byte, total)
	copy(frame, lenBuf[:])
	if _, err := io.ReadFull(u.conn, frame[lengthPrefixLength:]); err != nil {
		return nil, trace.Wrap(err, "read frame body")
	}
	return frame, nil
}

// Close closes the underlying socket, unblocking any in-progress Recv.
func (u *Unix) Close() error {
	return u.conn.Close()
}
