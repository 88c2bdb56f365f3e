package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates admin routes on the isAdmin claim. There is no role
// hierarchy beyond this boolean.
func RequireAdmin(c *gin.Context) {
	isAdmin, exists := c.Get("isAdmin")
	if !exists || isAdmin != true {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}
