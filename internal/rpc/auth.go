package rpc

// AuthFlavor identifies a credential scheme offered by AUTH_LIST. libvirtd's
// remote protocol authenticates local Unix-socket peers at the OS level (the
// listener itself restricts the socket, or checks SO_PEERCRED) and only ever
// offers AUTH_NONE to a client in that position; this client only needs to
// recognize that one flavor to complete the handshake.
type AuthFlavor uint32

const (
	AuthNull AuthFlavor = 0
	AuthUnix AuthFlavor = 1
)
