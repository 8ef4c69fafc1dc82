package services

import (
	"crypto/subtle"
	"sync"

	"github.com/poll/live/internal/core/ports"
)

type sessionGate struct {
	secret string

	mu         sync.Mutex
	privileged map[string]bool
}

// NewSessionGate builds the admin session gate around the one shared secret
// configured for the process lifetime.
func NewSessionGate(secret string) ports.SessionGate {
	return &sessionGate{
		secret:     secret,
		privileged: make(map[string]bool),
	}
}

func (g *sessionGate) Authenticate(connID, supplied string) bool {
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(g.secret)) != 1 {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.privileged[connID] = true
	return true
}

func (g *sessionGate) IsPrivileged(connID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.privileged[connID]
}

func (g *sessionGate) Revoke(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.privileged, connID)
}
