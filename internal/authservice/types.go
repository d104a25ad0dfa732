package authservice

import (
	"errors"
	"time"
)

var (
	// ErrMissingToken is returned when no bearer credential could be
	// extracted from the Authorization header.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrInvalidToken is the uniform caller-facing rejection for any
	// credential that fails verification. The underlying token error is
	// wrapped as the cause.
	ErrInvalidToken = errors.New("invalid or expired authentication token")

	// ErrForbidden is returned when an authenticated caller is not the
	// owner of the target resource.
	ErrForbidden = errors.New("forbidden")

	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
)

// Identity is the resolved caller of a request, derived from a verified
// token. It is ephemeral and never persisted.
type Identity struct {
	UserID int
	Expiry time.Time
}
