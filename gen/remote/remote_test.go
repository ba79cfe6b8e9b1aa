package remote

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coriolis-systems/govirt/internal/rpc"
)

func TestDecodeCallErrorDecodesRemoteErrorPayload(t *testing.T) {
	var buf bytes.Buffer
	src := RemoteError{Code: 42, Domain: 10, Message: "no such domain", Level: 2}
	require.NoError(t, src.Encode(&buf))

	err := decodeCallError(rpc.ReplyStatusError(rpc.StatusError, buf.Bytes()))

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, src, *remoteErr)
	assert.Contains(t, remoteErr.Error(), "no such domain")
}

func TestDecodeCallErrorPassesThroughNonReplyError(t *testing.T) {
	cause := errors.New("dial failed")
	assert.Same(t, cause, decodeCallError(cause))
}

func TestDecodeCallErrorPassesThroughUndecodablePayload(t *testing.T) {
	replyErr := rpc.ReplyStatusError(rpc.StatusError, []byte{0x01})
	assert.Same(t, replyErr, decodeCallError(replyErr))
}
