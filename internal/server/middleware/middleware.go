// Package middleware holds huma middlewares shared by the API operations.
package middleware

import "context"

// ctxKey is used for storing values in request context.
type ctxKey string

const (
	userKey   ctxKey = "user"
	claimsKey ctxKey = "claims"
)

// ClaimsKey returns the context key used to store JWT claims.
func ClaimsKey() any { return claimsKey }

// WithUser returns a copy of ctx carrying the user subject.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user subject stored in the context.
func UserFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userKey).(string); ok {
		return v
	}
	return ""
}
