package auth

import "context"

// SetSideForTest stores a side in the context the way SideMiddleware
// would, for handler tests that bypass the middleware.
func SetSideForTest(ctx context.Context, side int) context.Context {
	return context.WithValue(ctx, sideKey, side)
}

// SetUserIDForTest stores a user ID in the context the way Middleware
// would.
func SetUserIDForTest(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
