package core

import "errors"

// Sentinel errors shared across layers. The HTTP layer maps each of these
// to exactly one status code.
var (
	ErrMissingFields        = errors.New("missing required fields")
	ErrDuplicate            = errors.New("username or email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrNotFound             = errors.New("record not found")
	ErrRenderingUnavailable = errors.New("report rendering unavailable")
)
