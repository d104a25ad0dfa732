package authservice

import (
	"fmt"
	"strings"
)

const bearerPrefix = "bearer "

// Resolver turns the Authorization header value of a request into a
// resolved Identity.
type Resolver struct {
	codec *TokenCodec
}

func NewResolver(codec *TokenCodec) *Resolver {
	return &Resolver{codec: codec}
}

// Resolve extracts the bearer credential and verifies it. The scheme match
// is case-insensitive and requires exactly one space between the scheme and
// the credential; everything after that space is the credential. A missing
// header or a prefix mismatch yields ErrMissingToken. Any verification
// failure collapses to ErrInvalidToken with the codec error as cause.
func (r *Resolver) Resolve(header string) (*Identity, error) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return nil, ErrMissingToken
	}

	token := header[len(bearerPrefix):]

	identity, err := r.codec.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return identity, nil
}
