package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's name in the
// request context. Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// roleKey is the key used to store the authenticated user's role.
const roleKey = contextKey("role")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetRoleFromContext retrieves the authenticated user's role from the Gin context.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	roleVal := c.Request.Context().Value(roleKey)
	if roleVal == nil {
		return "", false
	}
	role, ok := roleVal.(string)
	if !ok {
		return "", false
	}
	return role, true
}
