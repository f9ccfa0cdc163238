package domain

import "errors"

// Sentinel errors shared across repositories and services. Repositories map
// driver-level failures to these; controllers map them to HTTP status codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateCode = errors.New("invite code already exists")
	ErrForbidden     = errors.New("forbidden")
)
