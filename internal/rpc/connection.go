package rpc

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coriolis-systems/govirt/internal/logger"
	"github.com/coriolis-systems/govirt/internal/telemetry"
)

// Transport is the minimal byte-oriented interface the engine needs from a
// stream connection: send one already-framed message, receive one complete
// frame, and close. internal/transport's Unix implementation satisfies this;
// the engine itself stays oblivious to what carries the bytes.
type Transport interface {
	Send(frame []byte) error
	Recv() ([]byte, error)
	Close() error
}

// waiter is the one-shot delivery slot for a single outstanding call.
type waiter struct {
	reply chan Packet
}

// Connection multiplexes concurrent calls over one Transport, matching
// replies to callers by serial number. Reads and writes are split: a single
// background goroutine owns the transport's receive side and dispatches
// replies to waiters, while callers write directly (serialized by a mutex)
// so multiple calls can be in flight at once.
type Connection struct {
	transport Transport
	metrics   *Metrics

	program uint32
	version uint32

	serial atomic.Int32

	mu      sync.Mutex
	pending map[int32]*waiter

	writeMu sync.Mutex

	closeOnce sync.Once
	closed    chan struct{}
	closeErr  error

	done chan struct{}
}

// NewConnection starts a Connection's background reader over transport,
// using program/version as the defaults Call uses (CallProgram overrides
// program per call). metrics may be nil.
func NewConnection(transport Transport, program, version uint32, metrics *Metrics) *Connection {
	c := &Connection{
		transport: transport,
		metrics:   metrics,
		program:   program,
		version:   version,
		pending:   make(map[int32]*waiter),
		closed:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	c.serial.Store(1)
	go c.readLoop()
	return c
}

// Call performs a call against the connection's default program/version.
func (c *Connection) Call(ctx context.Context, procedure uint32, payload []byte) ([]byte, error) {
	return c.CallProgram(ctx, c.program, procedure, payload)
}

// CallProgram performs a call against an explicit program number, for
// callers (e.g. the qemu/lxc sub-drivers) that multiplex more than one
// program over the same socket.
func (c *Connection) CallProgram(ctx context.Context, program, procedure uint32, payload []byte) (reply []byte, err error) {
	started := time.Now()
	serial := c.serial.Add(1) - 1

	ctx, span := telemetry.StartCallSpan(ctx, program, procedure, serial)
	defer func() { telemetry.EndCallSpan(span, err) }()

	w := &waiter{reply: make(chan Packet, 1)}
	c.mu.Lock()
	c.pending[serial] = w
	if c.metrics != nil {
		c.metrics.PendingCalls.Set(float64(len(c.pending)))
	}
	c.mu.Unlock()

	abandon := func() {
		c.mu.Lock()
		delete(c.pending, serial)
		if c.metrics != nil {
			c.metrics.PendingCalls.Set(float64(len(c.pending)))
		}
		c.mu.Unlock()
	}

	frame, err := EncodeFrame(Packet{
		Header: Header{
			Program:   program,
			Version:   c.version,
			Procedure: procedure,
			Type:      MsgCall,
			Serial:    serial,
			Status:    StatusOK,
		},
		Payload: payload,
	})
	if err != nil {
		abandon()
		return nil, err
	}

	if err := c.send(frame); err != nil {
		abandon()
		if c.metrics != nil {
			c.metrics.ObserveCall(procedure, "send_error", started)
		}
		return nil, err
	}

	select {
	case reply := <-w.reply:
		status := "ok"
		if reply.Header.Status != StatusOK {
			status = "error"
		}
		if c.metrics != nil {
			c.metrics.ObserveCall(procedure, status, started)
		}
		if reply.Header.Status != StatusOK {
			return reply.Payload, ReplyStatusError(reply.Header.Status, reply.Payload)
		}
		return reply.Payload, nil
	case <-ctx.Done():
		abandon()
		if c.metrics != nil {
			c.metrics.ObserveCall(procedure, "cancelled", started)
		}
		return nil, ctx.Err()
	case <-c.closed:
		abandon()
		if c.metrics != nil {
			c.metrics.ObserveCall(procedure, "connection_closed", started)
		}
		return nil, ConnClosed(c.closeErr)
	}
}

func (c *Connection) send(frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.transport.Send(frame); err != nil {
		wrapped := WriteFailed(err)
		c.fail(wrapped)
		return wrapped
	}
	return nil
}

// readLoop owns the transport's receive side for the connection's lifetime.
// A malformed frame or I/O failure is fatal to the connection: every
// outstanding waiter is delivered ConnectionClosed and further calls fail
// immediately, per the engine's shared-resource policy.
func (c *Connection) readLoop() {
	defer close(c.done)
	for {
		frame, err := c.transport.Recv()
		if err != nil {
			c.fail(ReadFailed(err))
			return
		}
		packet, err := DecodeFrame(frame)
		if err != nil {
			c.fail(err)
			return
		}
		c.dispatch(packet)
	}
}

func (c *Connection) dispatch(packet Packet) {
	switch packet.Header.Type {
	case MsgReply:
		c.mu.Lock()
		w, ok := c.pending[packet.Header.Serial]
		if ok {
			delete(c.pending, packet.Header.Serial)
		}
		if c.metrics != nil {
			c.metrics.PendingCalls.Set(float64(len(c.pending)))
		}
		c.mu.Unlock()
		if !ok {
			if c.metrics != nil {
				c.metrics.UnmatchedRepliesTotal.Inc()
			}
			logger.Debug("rpc: reply for unknown serial", logger.Serial(packet.Header.Serial))
			return
		}
		w.reply <- packet
	case MsgMessage, MsgStream:
		// Asynchronous events are out of scope; the worker must not crash on
		// them, so they are simply dropped on the floor here.
		logger.Debug("rpc: dropping out-of-scope async message", logger.MsgType(packet.Header.Type.String()))
	}
}

// fail marks the connection closed with cause. Every outstanding Call is
// blocked in a select that also watches c.closed, so closing it is enough
// to deliver ConnectionClosed to every waiter without touching their
// individual reply channels.
func (c *Connection) fail(cause error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closeErr = cause
		c.pending = make(map[int32]*waiter)
		c.mu.Unlock()

		close(c.closed)
	})
}

// Close shuts the connection down: the underlying transport is closed,
// which unblocks the reader goroutine, and every outstanding caller
// receives ConnectionClosed.
func (c *Connection) Close() error {
	c.fail(nil)
	err := c.transport.Close()
	<-c.done
	return err
}
