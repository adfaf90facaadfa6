package auth

import "context"

type contextKey struct{}

var claimsKey contextKey

// WithClaims returns a child context carrying verified session claims.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom extracts the session claims stored by the auth middleware.
// The second return is false on requests that never passed through it.
func ClaimsFrom(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}
