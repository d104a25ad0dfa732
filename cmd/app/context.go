package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/authservice"
)

type contextKey string

const identityContextKey = contextKey("identity")

func (app *application) createIdentityContext(r *http.Request, identity *authservice.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityContextKey, identity)
	return r.WithContext(ctx)
}

// getIdentityContext returns the resolved caller identity, or nil for an
// anonymous request.
func (app *application) getIdentityContext(r *http.Request) *authservice.Identity {
	identity, ok := r.Context().Value(identityContextKey).(*authservice.Identity)
	if !ok {
		return nil
	}
	return identity
}
