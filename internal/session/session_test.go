package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamecrate/gamecrate/internal/hash"
)

func TestAuthenticate(t *testing.T) {
	gate := NewGate(hash.SHA256Hex("hunter2"))

	assert.False(t, gate.IsAdmin())
	assert.Empty(t, gate.SessionID())

	assert.False(t, gate.Authenticate("wrong"))
	assert.False(t, gate.IsAdmin())

	assert.True(t, gate.Authenticate("hunter2"))
	assert.True(t, gate.IsAdmin())
	assert.NotEmpty(t, gate.SessionID())
}

func TestAuthenticateHashCaseInsensitive(t *testing.T) {
	upper := "2AB96390C7DBE3439DE74D0C9B0B1767"
	// Stored hashes may arrive uppercase from config; the gate
	// normalizes on construction.
	gate := NewGate(upper)
	assert.Equal(t, gate.passwordHash, "2ab96390c7dbe3439de74d0c9b0b1767")
}

func TestLogout(t *testing.T) {
	gate := NewGate(hash.SHA256Hex("pw"))

	assert.True(t, gate.Authenticate("pw"))
	gate.Logout()

	assert.False(t, gate.IsAdmin())
	assert.Empty(t, gate.SessionID())

	// Re-authentication works after logout.
	assert.True(t, gate.Authenticate("pw"))
	assert.True(t, gate.IsAdmin())
}

func TestFailedAuthDoesNotClearAdmin(t *testing.T) {
	gate := NewGate(hash.SHA256Hex("pw"))

	assert.True(t, gate.Authenticate("pw"))
	assert.False(t, gate.Authenticate("nope"))
	assert.True(t, gate.IsAdmin())
}
