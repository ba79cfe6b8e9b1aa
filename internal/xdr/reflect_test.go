package xdr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainArgs mirrors the shape of a generated _args struct with no union and
// no fixed-length opaque field: the common case the reflective bridge
// handles without any generated Encode/Decode methods at all.
type plainArgs struct {
	Flags uint32
	Name  string
	Tags  []string
}

func TestMarshalStructRoundTrip(t *testing.T) {
	want := plainArgs{
		Flags: 7,
		Name:  "default",
		Tags:  []string{"a", "bb", "ccc"},
	}

	var buf bytes.Buffer
	require.NoError(t, MarshalStruct(&buf, &want))

	var got plainArgs
	require.NoError(t, UnmarshalStruct(bytes.NewReader(buf.Bytes()), &got))
	assert.Equal(t, want, got)
}

func TestMarshalStructEmptySlice(t *testing.T) {
	want := plainArgs{Flags: 0, Name: "", Tags: nil}

	var buf bytes.Buffer
	require.NoError(t, MarshalStruct(&buf, &want))

	var got plainArgs
	require.NoError(t, UnmarshalStruct(bytes.NewReader(buf.Bytes()), &got))
	assert.Equal(t, want.Flags, got.Flags)
	assert.Equal(t, want.Name, got.Name)
	assert.Empty(t, got.Tags)
}
