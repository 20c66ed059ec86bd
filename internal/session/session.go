// Package session holds the in-memory admin gate. Admin status is
// derived from a password-hash check and never persisted, so every
// process start begins unauthenticated.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gamecrate/gamecrate/internal/hash"
)

// Gate tracks whether the current session is authenticated as admin.
type Gate struct {
	mu           sync.RWMutex
	passwordHash string
	isAdmin      bool
	sessionID    string
	startedAt    time.Time
}

// NewGate creates a gate that authenticates against the given SHA-256
// password hash (lowercase hex).
func NewGate(passwordHash string) *Gate {
	return &Gate{
		passwordHash: strings.ToLower(passwordHash),
	}
}

// Authenticate hashes the supplied password and compares it against the
// stored hash in constant time. Hash equality is the only success
// criterion. On success the session becomes admin until Logout.
func (g *Gate) Authenticate(password string) bool {
	ok := hash.Equal(hash.SHA256Hex(password), g.passwordHash)

	g.mu.Lock()
	defer g.mu.Unlock()

	if ok {
		g.isAdmin = true
		g.sessionID = uuid.NewString()
		g.startedAt = time.Now()
	}
	return ok
}

// Logout resets the session to unauthenticated.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.isAdmin = false
	g.sessionID = ""
	g.startedAt = time.Time{}
}

// IsAdmin reports whether the current session is authenticated.
func (g *Gate) IsAdmin() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.isAdmin
}

// SessionID returns the opaque id of the current admin session, empty
// when unauthenticated.
func (g *Gate) SessionID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sessionID
}
