package codegen

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coriolis-systems/govirt/internal/idl"
)

func parseRemoteFixture(t *testing.T) *idl.Protocol {
	t.Helper()
	src, err := os.ReadFile("../../testdata/idl/remote.x")
	require.NoError(t, err)
	proto, err := idl.Parse(string(src))
	require.NoError(t, err)
	return proto
}

func TestGenerateIsDeterministic(t *testing.T) {
	proto := parseRemoteFixture(t)

	first, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)
	second, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGenerateEmitsExpectedConstants(t *testing.T) {
	proto := parseRemoteFixture(t)
	out, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "const Program = 536903814")
	assert.Contains(t, src, "const ProtocolVersion = 1")
	assert.Contains(t, src, "const UuidBuflen = 16")
}

func TestGenerateEmitsStructTypesWithCodec(t *testing.T) {
	proto := parseRemoteFixture(t)
	out, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "type NonnullDomain struct {")
	assert.Contains(t, src, "Uuid")
	assert.Contains(t, src, "xdr.UUID")
	assert.Contains(t, src, "func (v *NonnullDomain) Encode(w io.Writer) error {")
	assert.Contains(t, src, "func (v *NonnullDomain) Decode(r io.Reader) error {")
}

func TestGenerateEmitsUnionType(t *testing.T) {
	proto := parseRemoteFixture(t)
	out, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "type AuthTypeListCred struct {")
	assert.Contains(t, src, "Cred")
	assert.Contains(t, src, "*int32")
}

func TestGenerateEmitsProcedureMethods(t *testing.T) {
	proto := parseRemoteFixture(t)
	out, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "func (c *Client) ConnectOpen(ctx context.Context, args *ConnectOpenArgs) (*ConnectOpenRet, error)")
	assert.Contains(t, src, "func (c *Client) ConnectClose(ctx context.Context) error")
	assert.Contains(t, src, "func (c *Client) AuthList(ctx context.Context) (*AuthListRet, error)")
}

func TestGenerateEmitsTransportCallerInterface(t *testing.T) {
	proto := parseRemoteFixture(t)
	out, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "type TransportCaller interface {")
	assert.Contains(t, src, "Call(ctx context.Context, procedure uint32, payload []byte) ([]byte, error)")
	assert.Contains(t, src, "CallProgram(ctx context.Context, program, procedure uint32, payload []byte) ([]byte, error)")
}

func TestGenerateEmitsRemoteErrorDecoding(t *testing.T) {
	proto := parseRemoteFixture(t)
	out, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "func decodeCallError(err error) error {")
	assert.Contains(t, src, "func (v *RemoteError) Error() string {")
	assert.Contains(t, src, `"github.com/coriolis-systems/govirt/internal/rpc"`)
	assert.Contains(t, src, "return nil, decodeCallError(err)")
}

func TestGenerateOmitsRemoteErrorDecodingWhenProtocolHasNone(t *testing.T) {
	proto, err := idl.Parse(`struct Point { int x; int y; };`)
	require.NoError(t, err)

	out, err := Generate(proto, Options{PackageName: "geom"})
	require.NoError(t, err)

	src := string(out)
	assert.NotContains(t, src, "decodeCallError")
	assert.NotContains(t, src, `"github.com/coriolis-systems/govirt/internal/rpc"`)
}

func TestGenerateEmitsReflectiveCodecForPlainStruct(t *testing.T) {
	proto := parseRemoteFixture(t)
	out, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "func (v *ConnectOpenArgs) Encode(w io.Writer) error {\n\treturn xdr.MarshalStruct(w, v)\n}")
	assert.Contains(t, src, "func (v *ConnectOpenArgs) Decode(r io.Reader) error {\n\treturn xdr.UnmarshalStruct(r, v)\n}")
}

func TestGenerateKeepsExplicitCodecForFixedOpaqueStruct(t *testing.T) {
	proto := parseRemoteFixture(t)
	out, err := Generate(proto, Options{PackageName: "remote"})
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "if err := v.Uuid.Encode(w); err != nil {")
	assert.NotContains(t, src, "func (v *NonnullDomain) Encode(w io.Writer) error {\n\treturn xdr.MarshalStruct(w, v)\n}")
}

func TestGenerateHandlesMinimalStruct(t *testing.T) {
	proto, err := idl.Parse(`struct Point { int x; int y; };`)
	require.NoError(t, err)

	out, err := Generate(proto, Options{PackageName: "geom"})
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "type Point struct {")
	assert.Contains(t, src, "X int32")
	assert.Contains(t, src, "Y int32")
}
