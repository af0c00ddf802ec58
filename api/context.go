package api

import (
	"context"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the token subject to the context
func ctxWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID returns the token subject, or "" outside authenticated routes
func ctxGetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
