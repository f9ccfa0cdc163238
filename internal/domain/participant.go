package domain

import "time"

// Participants are identified by an opaque user ID carried in a bearer token.
// Account management (signup, login, passwords) lives outside this service;
// the core only needs to verify who is calling.

// TokenIssuer issues tokens (e.g. JWT) for an authenticated participant.
type TokenIssuer interface {
	Issue(userID string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated participant ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
