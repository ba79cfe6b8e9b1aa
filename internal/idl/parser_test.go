package idl

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePointStruct(t *testing.T) {
	// spec scenario 6: struct Point { int x; int y; }; yields exactly one
	// struct with two i32 fields named x, y, in order.
	src, err := os.ReadFile("../../testdata/idl/point.x")
	require.NoError(t, err)

	proto, err := Parse(string(src))
	require.NoError(t, err)

	require.Len(t, proto.Types, 1)
	td := proto.Types[0]
	assert.Equal(t, KindStruct, td.Kind)
	assert.Equal(t, "Point", td.Name)
	require.Len(t, td.Fields, 2)
	assert.Equal(t, "x", td.Fields[0].Name)
	assert.Equal(t, TInt, td.Fields[0].Type.Kind)
	assert.Equal(t, "y", td.Fields[1].Name)
	assert.Equal(t, TInt, td.Fields[1].Type.Kind)
}

func TestParseConstDef(t *testing.T) {
	proto, err := Parse(`const REMOTE_PROGRAM = 0x20008086;`)
	require.NoError(t, err)
	require.Len(t, proto.Constants, 1)
	assert.Equal(t, "REMOTE_PROGRAM", proto.Constants[0].Name)
	assert.True(t, proto.Constants[0].Value.IsInt)
	assert.Equal(t, int64(0x20008086), proto.Constants[0].Value.Int)
}

func TestParseNegativeConst(t *testing.T) {
	proto, err := Parse(`const FOO = -1;`)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), proto.Constants[0].Value.Int)
}

func TestPreprocessStripsCommentsAndDirectives(t *testing.T) {
	src := `
/* block
   comment */
// line comment
# define IGNORED 1
% passthrough line
const A = 1;
`
	out := Preprocess(src)
	assert.NotContains(t, out, "comment")
	assert.NotContains(t, out, "IGNORED")
	assert.NotContains(t, out, "passthrough")
	assert.Contains(t, out, "const A = 1;")
}

func TestParseEnumWithValues(t *testing.T) {
	proto, err := Parse(`
enum color {
    RED = 0,
    GREEN = 1,
    BLUE = 2
};
`)
	require.NoError(t, err)
	require.Len(t, proto.Types, 1)
	td := proto.Types[0]
	assert.Equal(t, KindEnum, td.Kind)
	require.Len(t, td.Variants, 3)
	assert.Equal(t, "RED", td.Variants[0].Name)
	require.NotNil(t, td.Variants[0].Value)
	assert.Equal(t, int64(0), td.Variants[0].Value.Int)
}

func TestParseUnionWithDefaultVoid(t *testing.T) {
	proto, err := Parse(`
union result switch (int status) {
    case 1:
        int value;
    default:
        void;
};
`)
	require.NoError(t, err)
	td := proto.Types[0]
	assert.Equal(t, KindUnion, td.Kind)
	assert.Equal(t, "status", td.Discriminant.Name)
	assert.Equal(t, TInt, td.Discriminant.Type.Kind)
	require.Len(t, td.Cases, 1)
	require.NotNil(t, td.Cases[0].Field)
	assert.Equal(t, "value", td.Cases[0].Field.Name)
	assert.Nil(t, td.Default) // void arm carries no field
}

func TestParseFixedOpaqueWithResolvedConstant(t *testing.T) {
	proto, err := Parse(`
const VIR_UUID_BUFLEN = 16;
struct domain {
    opaque uuid[VIR_UUID_BUFLEN];
};
`)
	require.NoError(t, err)
	td := proto.Types[0]
	require.Len(t, td.Fields, 1)
	f := td.Fields[0]
	assert.Equal(t, TOpaque, f.Type.Kind)
	assert.Equal(t, LengthFixed, f.Type.OpaqueLength.Kind)
	assert.Equal(t, uint64(16), f.Type.OpaqueLength.N)
	assert.False(t, f.Type.OpaqueLength.Unresolved)
}

func TestParseFixedOpaqueWithWellKnownConstant(t *testing.T) {
	// No VIR_UUID_BUFLEN const defined in this source at all; it must still
	// resolve from the well-known constant table.
	proto, err := Parse(`
struct domain {
    opaque uuid[VIR_UUID_BUFLEN];
};
`)
	require.NoError(t, err)
	f := proto.Types[0].Fields[0]
	assert.Equal(t, uint64(16), f.Type.OpaqueLength.N)
	assert.False(t, f.Type.OpaqueLength.Unresolved)
}

func TestParseUnresolvedLengthIdentFlagged(t *testing.T) {
	proto, err := Parse(`
struct thing {
    opaque data[SOME_UNDEFINED_CONSTANT];
};
`)
	require.NoError(t, err)
	f := proto.Types[0].Fields[0]
	assert.True(t, f.Type.OpaqueLength.Unresolved)
	assert.Equal(t, uint64(0), f.Type.OpaqueLength.N)
}

func TestParseVariableArray(t *testing.T) {
	proto, err := Parse(`
struct list {
    unsigned int ids<128>;
};
`)
	require.NoError(t, err)
	f := proto.Types[0].Fields[0]
	assert.Equal(t, TArray, f.Type.Kind)
	assert.Equal(t, TUInt, f.Type.Elem.Kind)
	assert.Equal(t, LengthVariable, f.Type.ArrayLength.Kind)
	assert.Equal(t, uint64(128), f.Type.ArrayLength.N)
}

func TestParseTypedefPointerLowersToOptional(t *testing.T) {
	proto, err := Parse(`
struct node {
    int value;
};
typedef node *node_ptr;
`)
	require.NoError(t, err)
	td := proto.Types[1]
	assert.Equal(t, KindTypedef, td.Kind)
	assert.Equal(t, TOptional, td.Target.Kind)
	require.NotNil(t, td.Target.Inner)
	assert.Equal(t, TNamed, td.Target.Inner.Kind)
	assert.Equal(t, "node", td.Target.Inner.Name)
}

func TestParseRemoteFixtureExtractsMetadata(t *testing.T) {
	src, err := os.ReadFile("../../testdata/idl/remote.x")
	require.NoError(t, err)

	proto, err := Parse(string(src))
	require.NoError(t, err)

	assert.Equal(t, "REMOTE", proto.Name)
	assert.Equal(t, uint32(0x20008086), proto.ProgramID)
	assert.Equal(t, uint32(1), proto.ProtocolVersion)
}

func TestParseRemoteFixtureSynthesizesProcedures(t *testing.T) {
	src, err := os.ReadFile("../../testdata/idl/remote.x")
	require.NoError(t, err)

	proto, err := Parse(string(src))
	require.NoError(t, err)

	require.Len(t, proto.Procedures, 5)

	byName := map[string]Procedure{}
	for _, p := range proto.Procedures {
		byName[p.Name] = p
	}

	open, ok := byName["connect_open"]
	require.True(t, ok)
	assert.Equal(t, int64(1), open.Number)
	assert.Equal(t, "remote_connect_open_args", open.ArgsType)
	assert.Equal(t, "remote_connect_open_ret", open.RetType)

	close, ok := byName["connect_close"]
	require.True(t, ok)
	assert.Equal(t, int64(2), close.Number)
	assert.Empty(t, close.ArgsType)
	assert.Empty(t, close.RetType)

	authList, ok := byName["auth_list"]
	require.True(t, ok)
	assert.Empty(t, authList.ArgsType)
	assert.Equal(t, "remote_auth_list_ret", authList.RetType)
}

func TestParseRemoteFixtureResolvesUUIDLength(t *testing.T) {
	src, err := os.ReadFile("../../testdata/idl/remote.x")
	require.NoError(t, err)

	proto, err := Parse(string(src))
	require.NoError(t, err)

	var domain *TypeDef
	for i := range proto.Types {
		if proto.Types[i].Name == "remote_nonnull_domain" {
			domain = &proto.Types[i]
		}
	}
	require.NotNil(t, domain)

	var uuidField *Field
	for i := range domain.Fields {
		if domain.Fields[i].Name == "uuid" {
			uuidField = &domain.Fields[i]
		}
	}
	require.NotNil(t, uuidField)
	assert.Equal(t, TOpaque, uuidField.Type.Kind)
	assert.Equal(t, uint64(16), uuidField.Type.OpaqueLength.N)
}

func TestSyntaxErrorReportsPosition(t *testing.T) {
	_, err := Parse(`struct Broken { int x }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
	assert.Contains(t, err.Error(), "line 1 (offset 22)")
}
