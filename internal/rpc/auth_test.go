package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthFlavorValues(t *testing.T) {
	assert.Equal(t, AuthFlavor(0), AuthNull)
	assert.Equal(t, AuthFlavor(1), AuthUnix)
}
