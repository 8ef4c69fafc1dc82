package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionGate(t *testing.T) {
	gate := NewSessionGate("secret")

	assert.False(t, gate.IsPrivileged("conn-1"))

	assert.False(t, gate.Authenticate("conn-1", "wrong"))
	assert.False(t, gate.IsPrivileged("conn-1"))

	assert.True(t, gate.Authenticate("conn-1", "secret"))
	assert.True(t, gate.IsPrivileged("conn-1"))

	// Privilege is per connection, not global.
	assert.False(t, gate.IsPrivileged("conn-2"))

	gate.Revoke("conn-1")
	assert.False(t, gate.IsPrivileged("conn-1"))

	// Revoking an unknown connection is a no-op.
	gate.Revoke("conn-404")
}

func TestSessionGateNoLockout(t *testing.T) {
	gate := NewSessionGate("secret")

	for i := 0; i < 50; i++ {
		assert.False(t, gate.Authenticate("conn-1", "wrong"))
	}

	// Repeated failures never lock the connection out.
	assert.True(t, gate.Authenticate("conn-1", "secret"))
}
