package context

import (
	"context"

	"github.com/onestopfashion897-star/onestopfashion-backend/constant"
)

// GetUserID returns the authenticated user's id (ObjectID hex) from ctx.
func GetUserID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// GetUserRole returns the authenticated user's role from ctx.
func GetUserRole(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.UserRoleKey)
	if v == nil {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// IsAdmin reports whether the request context carries the admin role.
func IsAdmin(ctx context.Context) bool {
	role, ok := GetUserRole(ctx)
	return ok && role == constant.RoleAdmin
}
