package govirt

import (
	"path/filepath"
	"strings"

	"github.com/coriolis-systems/govirt/pkg/govirtconfig"
)

const (
	systemSocketPath  = "/var/run/libvirt/libvirt-sock"
	sessionSockSuffix = "libvirt/libvirt-sock"
)

// ResolveSocketPath maps a connection URI to the Unix socket path to dial,
// per the client's URI surface:
//
//	qemu:///system  -> /var/run/libvirt/libvirt-sock
//	qemu:///session -> $XDG_RUNTIME_DIR/libvirt/libvirt-sock (fallback /tmp)
//	unix:///path    -> that path
//	/absolute/path  -> that path
//
// Any other scheme returns UnsupportedUri. XDG_RUNTIME_DIR is read here,
// at resolve time, rather than cached process-wide: the session socket
// path is process-environment-dependent state that can legitimately change
// between calls in long-lived programs (e.g. a login session).
func ResolveSocketPath(uri string) (string, error) {
	switch {
	case uri == "qemu:///system":
		return systemSocketPath, nil
	case uri == "qemu:///session":
		return sessionSocketPath(), nil
	case strings.HasPrefix(uri, "unix://"):
		return strings.TrimPrefix(uri, "unix://"), nil
	case filepath.IsAbs(uri):
		return uri, nil
	default:
		return "", UnsupportedURI(uri)
	}
}

func sessionSocketPath() string {
	return filepath.Join(govirtconfig.RuntimeSocketDir(), sessionSockSuffix)
}
