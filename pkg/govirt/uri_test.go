package govirt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSocketPathSystem(t *testing.T) {
	path, err := ResolveSocketPath("qemu:///system")
	require.NoError(t, err)
	assert.Equal(t, "/var/run/libvirt/libvirt-sock", path)
}

func TestResolveSocketPathSessionUsesXDGRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	path, err := ResolveSocketPath("qemu:///session")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/run/user/1000", "libvirt", "libvirt-sock"), path)
}

func TestResolveSocketPathSessionFallsBackToTmp(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	path, err := ResolveSocketPath("qemu:///session")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp", "libvirt", "libvirt-sock"), path)
}

func TestResolveSocketPathUnixScheme(t *testing.T) {
	path, err := ResolveSocketPath("unix:///tmp/my.sock")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/my.sock", path)
}

func TestResolveSocketPathAbsolutePath(t *testing.T) {
	path, err := ResolveSocketPath("/var/custom/libvirt.sock")
	require.NoError(t, err)
	assert.Equal(t, "/var/custom/libvirt.sock", path)
}

func TestResolveSocketPathRejectsUnknownScheme(t *testing.T) {
	_, err := ResolveSocketPath("tcp://example.com:16509")
	require.Error(t, err)
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "UnsupportedUri", connErr.Kind)
}
