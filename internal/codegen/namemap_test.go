package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeNameStripsRemotePrefix(t *testing.T) {
	assert.Equal(t, "NonnullDomain", TypeName("remote_nonnull_domain"))
}

func TestTypeNameStripsVirNetPrefix(t *testing.T) {
	assert.Equal(t, "DaemonClient", TypeName("virNetDaemonClient"))
}

func TestTypeNameEscapesReservedCollision(t *testing.T) {
	assert.Equal(t, "RemoteError", TypeName("remote_error"))
}

func TestFieldNameSnakeCases(t *testing.T) {
	assert.Equal(t, "domain_name", FieldName("domainName"))
}

func TestFieldNameEscapesGoKeyword(t *testing.T) {
	assert.Equal(t, "type_", FieldName("type"))
}

func TestGoFieldNameUpperCamelCases(t *testing.T) {
	assert.Equal(t, "DomainName", GoFieldName("domain_name"))
}

func TestEnumVariantNameStripsEnumPrefix(t *testing.T) {
	assert.Equal(t, "Running", EnumVariantName("remote_domain_state", "REMOTE_DOMAIN_STATE_RUNNING"))
}

func TestEnumVariantNameFallsBackToRemotePrefix(t *testing.T) {
	assert.Equal(t, "Blocked", EnumVariantName("vir_domain_state", "REMOTE_BLOCKED"))
}

func TestEnumVariantNameFallsBackToVirPrefix(t *testing.T) {
	assert.Equal(t, "Running", EnumVariantName("some_enum", "VIR_RUNNING"))
}

func TestMethodNameStripsRemoteProcPrefix(t *testing.T) {
	assert.Equal(t, "connect_open", MethodName("REMOTE_PROC_CONNECT_OPEN"))
}

func TestMethodNameStripsQemuProcPrefix(t *testing.T) {
	assert.Equal(t, "domain_monitor_command", MethodName("QEMU_PROC_DOMAIN_MONITOR_COMMAND"))
}

func TestMethodNameStripsLxcProcPrefix(t *testing.T) {
	assert.Equal(t, "domain_open_namespace", MethodName("LXC_PROC_DOMAIN_OPEN_NAMESPACE"))
}

func TestGoMethodNameUpperCamelCases(t *testing.T) {
	assert.Equal(t, "ConnectOpen", GoMethodName("REMOTE_PROC_CONNECT_OPEN"))
}
