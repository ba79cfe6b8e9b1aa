// Package govirt is the top-level client facade: given a libvirt connection
// URI, it resolves the right Unix socket, dials it, performs the
// AUTH_LIST/CONNECT_OPEN handshake, and hands back a typed RPC client built
// on the generated remote protocol stubs.
package govirt

import (
	"context"
	"errors"
	"time"

	"github.com/coriolis-systems/govirt/gen/remote"
	"github.com/coriolis-systems/govirt/internal/logger"
	"github.com/coriolis-systems/govirt/internal/rpc"
	"github.com/coriolis-systems/govirt/internal/transport"
)

// DefaultDialTimeout bounds how long Open waits for the socket to accept
// a connection before giving up.
const DefaultDialTimeout = 5 * time.Second

// Options configures Open. The zero value uses DefaultDialTimeout and no
// Prometheus registration.
type Options struct {
	// DialTimeout bounds the initial socket connect. Zero uses DefaultDialTimeout.
	DialTimeout time.Duration

	// Metrics, if non-nil, receives RPC engine observability.
	Metrics *rpc.Metrics
}

// Client is a connected libvirt RPC client: the generated remote-protocol
// stubs (Remote) plus the underlying connection they dispatch over.
type Client struct {
	Remote *remote.Client

	conn *rpc.Connection
}

// Open resolves uri to a Unix socket path, dials it, and performs the
// daemon's AUTH_LIST -> CONNECT_OPEN handshake before returning a ready
// Client.
func Open(ctx context.Context, uri string, opts Options) (*Client, error) {
	socketPath, err := ResolveSocketPath(uri)
	if err != nil {
		return nil, err
	}

	dialTimeout := opts.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = DefaultDialTimeout
	}

	logger.Debug("govirt: dialing", logger.URI(uri), logger.SocketPath(socketPath))
	t, err := transport.DialUnix(ctx, socketPath, dialTimeout)
	if err != nil {
		return nil, IoFailure(err)
	}

	conn := rpc.NewConnection(t, remote.Program, remote.ProtocolVersion, opts.Metrics)
	remoteClient := &remote.Client{Caller: conn}

	client := &Client{Remote: remoteClient, conn: conn}

	if err := client.handshake(ctx, uri); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// handshake performs the AUTH_LIST -> CONNECT_OPEN sequence every
// connection must complete before issuing any other call.
func (c *Client) handshake(ctx context.Context, uri string) error {
	authList, err := c.Remote.AuthList(ctx)
	if err != nil {
		return IoFailure(err)
	}

	accepted := false
	for _, flavor := range authList.Types {
		if flavor == uint32(rpc.AuthNull) {
			accepted = true
			break
		}
	}
	if !accepted {
		return AuthFailed("daemon did not offer AUTH_NONE for this connection")
	}

	_, err = c.Remote.ConnectOpen(ctx, &remote.ConnectOpenArgs{Name: uri, Flags: 0})
	if err != nil {
		var remoteErr *remote.RemoteError
		if errors.As(err, &remoteErr) {
			return RemoteErrorFrom(remoteErr)
		}
		return ProtocolError("CONNECT_OPEN failed: " + err.Error())
	}
	return nil
}

// Close issues CONNECT_CLOSE and tears down the underlying connection and
// transport. It is safe to call even if the handshake never completed.
func (c *Client) Close() error {
	if c.conn != nil {
		_ = c.Remote.ConnectClose(context.Background())
		return c.conn.Close()
	}
	return nil
}
