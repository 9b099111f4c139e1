package middleware

import (
	"net/http"

	"festival-app/database"
	"festival-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireActiveAccount rejects requests from deactivated accounts before
// they reach a handler. The workflow engine re-checks account status
// inside every transition; this guard just fails fast at the edge.
func RequireActiveAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user users.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}

		if !user.Active() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}

		c.Next()
	}
}
