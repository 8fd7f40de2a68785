package auth

import "github.com/gin-gonic/gin"

// Role values carried by a principal.
const (
	RoleCustomer     = "customer"
	RoleAdmin        = "admin"
	RoleLodgeManager = "lodge_manager"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return getString(c, "userID")
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return getString(c, "userEmail")
}

// GetRole returns the authenticated user's role or empty string.
func GetRole(c *gin.Context) string {
	return getString(c, "userRole")
}

// GetLodgeID returns the lodge managed by the authenticated user, or empty string.
func GetLodgeID(c *gin.Context) string {
	return getString(c, "userLodgeID")
}

// IsAdmin reports whether the authenticated user has the admin role.
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == RoleAdmin
}

// ManagesLodge reports whether the authenticated user manages the given lodge.
func ManagesLodge(c *gin.Context, lodgeID string) bool {
	return GetRole(c) == RoleLodgeManager && lodgeID != "" && GetLodgeID(c) == lodgeID
}

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
