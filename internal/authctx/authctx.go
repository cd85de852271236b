// Package authctx carries the authenticated user's id through the request
// context as a typed value, so handlers never reach for a shared global.
package authctx

import "context"

type ctxKey struct{}

// WithUserID returns a copy of ctx with the caller's user id attached.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserID extracts the authenticated user id from ctx. Returns "" if the
// request never passed the auth middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
