package ports

// SessionGate tracks which live connections hold admin privileges for this
// process lifetime. Privileges are scoped to a connection and die with it;
// nothing is persisted.
type SessionGate interface {
	// Authenticate compares the supplied secret against the configured
	// admin password and, on match, marks the connection privileged.
	// Repeated failures are not rate limited.
	Authenticate(connID, secret string) bool

	IsPrivileged(connID string) bool

	// Revoke drops the connection's privileges. Called on disconnect.
	Revoke(connID string)
}
