package transport

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenUnix starts a Unix domain socket listener at a fresh path under t's
// temp directory, the way an integration test against libvirtd's own
// listening socket would, minus the real daemon.
func listenUnix(t *testing.T) (net.Listener, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "govirt-test.sock")
	l, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l, path
}

func encodeFrame(payload []byte) []byte {
	total := 4 + len(payload)
	buf := make([]byte, total)
	binary.BigEndian.PutUint32(buf[0:4], uint32(total))
	copy(buf[4:], payload)
	return buf
}

func TestUnixSendReceivedByServer(t *testing.T) {
	l, path := listenUnix(t)

	accepted := make(chan []byte, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var lenBuf [4]byte
		if _, err := io.ReadFull(conn, lenBuf[:]); err != nil {
			return
		}
		total := binary.BigEndian.Uint32(lenBuf[:])
		body := make([]byte, total-4)
		_, _ = io.ReadFull(conn, body)
		accepted <- body
	}()

	u, err := DialUnix(context.Background(), path, time.Second)
	require.NoError(t, err)
	defer u.Close()

	require.NoError(t, u.Send(encodeFrame([]byte("hello"))))

	select {
	case body := <-accepted:
		assert.Equal(t, []byte("hello"), body)
	case <-time.After(2 * time.Second):
		t.Fatal("server never received the frame")
	}
}

func TestUnixRecvReadsOneCompleteFrame(t *testing.T) {
	l, path := listenUnix(t)

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = conn.Write(encodeFrame([]byte("world")))
	}()

	u, err := DialUnix(context.Background(), path, time.Second)
	require.NoError(t, err)
	defer u.Close()

	frame, err := u.Recv()
	require.NoError(t, err)
	assert.Equal(t, encodeFrame([]byte("world")), frame)
}

func TestUnixRecvRejectsOversizedFrame(t *testing.T) {
	l, path := listenUnix(t)

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], MaxFrameLength+1)
		_, _ = conn.Write(lenBuf[:])
	}()

	u, err := DialUnix(context.Background(), path, time.Second)
	require.NoError(t, err)
	defer u.Close()

	_, err = u.Recv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside valid range")
}

func TestUnixRecvReturnsErrorWhenPeerCloses(t *testing.T) {
	l, path := listenUnix(t)

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		_ = conn.Close()
	}()

	u, err := DialUnix(context.Background(), path, time.Second)
	require.NoError(t, err)
	defer u.Close()

	_, err = u.Recv()
	require.Error(t, err)
}

func TestDialUnixFailsForMissingSocket(t *testing.T) {
	_, err := DialUnix(context.Background(), filepath.Join(t.TempDir(), "no-such.sock"), time.Second)
	require.Error(t, err)
}
