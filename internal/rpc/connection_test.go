package rpc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport is an in-memory Transport used to drive Connection without
// a real socket. Sent frames are captured; recvQ feeds the read loop.
type fakeTransport struct {
	mu       sync.Mutex
	sent     []Packet
	recvQ    chan []byte
	closed   bool
	closeErr error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{recvQ: make(chan []byte, 16)}
}

func (f *fakeTransport) Send(frame []byte) error {
	p, err := DecodeFrame(frame)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.sent = append(f.sent, p)
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) Recv() ([]byte, error) {
	frame, ok := <-f.recvQ
	if !ok {
		return nil, f.recvErr()
	}
	return frame, nil
}

func (f *fakeTransport) recvErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closeErr != nil {
		return f.closeErr
	}
	return context.Canceled
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.recvQ)
	}
	return nil
}

func (f *fakeTransport) lastSent() (Packet, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return Packet{}, false
	}
	return f.sent[len(f.sent)-1], true
}

func (f *fakeTransport) replyTo(serial int32, status Status, payload []byte) {
	frame, _ := EncodeFrame(Packet{
		Header: Header{Type: MsgReply, Serial: serial, Status: status},
		Payload: payload,
	})
	f.recvQ <- frame
}

func TestConnectionCallRoundTrip(t *testing.T) {
	ft := newFakeTransport()
	conn := NewConnection(ft, 0x20008086, 1, nil)
	defer conn.Close()

	done := make(chan struct{})
	var reply []byte
	var callErr error
	go func() {
		reply, callErr = conn.Call(context.Background(), 42, []byte("hello"))
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, ok := ft.lastSent()
		return ok
	}, time.Second, time.Millisecond)

	sent, _ := ft.lastSent()
	assert.Equal(t, uint32(42), sent.Header.Procedure)
	assert.Equal(t, MsgCall, sent.Header.Type)

	ft.replyTo(sent.Header.Serial, StatusOK, []byte("world"))

	<-done
	require.NoError(t, callErr)
	assert.Equal(t, []byte("world"), reply)
}

// TestConnectionConcurrentDispatch exercises two calls dispatched in quick
// succession on one connection, each obtaining a distinct serial, with
// replies arriving in reversed order — each caller must still receive its
// own reply.
func TestConnectionConcurrentDispatch(t *testing.T) {
	ft := newFakeTransport()
	conn := NewConnection(ft, 1, 1, nil)
	defer conn.Close()

	type result struct {
		payload []byte
		err     error
	}
	results := make([]chan result, 2)
	for i := range results {
		results[i] = make(chan result, 1)
	}

	go func() {
		p, err := conn.Call(context.Background(), 10, []byte("first"))
		results[0] <- result{p, err}
	}()
	go func() {
		p, err := conn.Call(context.Background(), 20, []byte("second"))
		results[1] <- result{p, err}
	}()

	require.Eventually(t, func() bool {
		ft.mu.Lock()
		defer ft.mu.Unlock()
		return len(ft.sent) == 2
	}, time.Second, time.Millisecond)

	ft.mu.Lock()
	serialFor := map[uint32]int32{}
	for _, p := range ft.sent {
		serialFor[p.Header.Procedure] = p.Header.Serial
	}
	ft.mu.Unlock()

	assert.NotEqual(t, serialFor[10], serialFor[20])

	// Reply in reversed dispatch order.
	ft.replyTo(serialFor[20], StatusOK, []byte("reply-for-second"))
	ft.replyTo(serialFor[10], StatusOK, []byte("reply-for-first"))

	r0 := <-results[0]
	r1 := <-results[1]
	require.NoError(t, r0.err)
	require.NoError(t, r1.err)
	assert.Equal(t, []byte("reply-for-first"), r0.payload)
	assert.Equal(t, []byte("reply-for-second"), r1.payload)
}

func TestConnectionCallReturnsErrorOnErrorStatus(t *testing.T) {
	ft := newFakeTransport()
	conn := NewConnection(ft, 1, 1, nil)
	defer conn.Close()

	done := make(chan error, 1)
	go func() {
		_, err := conn.Call(context.Background(), 1, nil)
		done <- err
	}()

	require.Eventually(t, func() bool {
		_, ok := ft.lastSent()
		return ok
	}, time.Second, time.Millisecond)
	sent, _ := ft.lastSent()
	ft.replyTo(sent.Header.Serial, StatusError, []byte("boom"))

	err := <-done
	require.Error(t, err)
	var replyErr *ReplyError
	require.ErrorAs(t, err, &replyErr)
	assert.Equal(t, StatusError, replyErr.Status)
}

func TestConnectionCallAbandonedOnContextCancel(t *testing.T) {
	ft := newFakeTransport()
	conn := NewConnection(ft, 1, 1, nil)
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := conn.Call(ctx, 1, nil)
		done <- err
	}()

	require.Eventually(t, func() bool {
		_, ok := ft.lastSent()
		return ok
	}, time.Second, time.Millisecond)
	cancel()

	err := <-done
	require.ErrorIs(t, err, context.Canceled)

	conn.mu.Lock()
	pendingCount := len(conn.pending)
	conn.mu.Unlock()
	assert.Equal(t, 0, pendingCount, "abandoned call must be removed from the pending table")
}

func TestConnectionCloseFansOutToWaiters(t *testing.T) {
	ft := newFakeTransport()
	conn := NewConnection(ft, 1, 1, nil)

	done := make(chan error, 1)
	go func() {
		_, err := conn.Call(context.Background(), 1, nil)
		done <- err
	}()

	require.Eventually(t, func() bool {
		_, ok := ft.lastSent()
		return ok
	}, time.Second, time.Millisecond)

	require.NoError(t, conn.Close())

	err := <-done
	require.Error(t, err)
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
}
