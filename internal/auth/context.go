package auth

import (
	"context"
	"net/http"
)

// ContextKey is the type used for context keys
type ContextKey string

// ContextKeyIdentity is the key for the verified caller identity.
const ContextKeyIdentity ContextKey = "identity"

// WithIdentity returns a context carrying the verified caller identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, identity)
}

// GetIdentity retrieves the verified caller identity from the request context.
func GetIdentity(r *http.Request) (Identity, bool) {
	identity, ok := r.Context().Value(ContextKeyIdentity).(Identity)
	return identity, ok
}
