package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// adminKey marks platform operators that may see every transaction.
const adminKey = contextKey("admin")

// WithUser returns a context carrying an authenticated user. The CLI and tests use it
// to act outside an HTTP request.
func WithUser(ctx context.Context, userID string, admin bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, adminKey, admin)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx retrieves the authenticated user ID from a standard context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// IsAdminFromCtx reports whether the authenticated user carries the admin claim.
func IsAdminFromCtx(ctx context.Context) bool {
	admin, _ := ctx.Value(adminKey).(bool)
	return admin
}
