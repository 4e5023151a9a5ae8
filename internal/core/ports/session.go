package ports

// SessionManager issues and verifies the signed tokens stored in the session
// cookie. A session carries the username only; roles are always resolved
// live from the directory so role changes take effect immediately.
type SessionManager interface {
	Issue(username string) (string, error)
	// Parse returns the username embedded in a valid token. Any error
	// means "not logged in".
	Parse(token string) (string, error)
}
