package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BusinessGuard returns middleware that ensures a business context is present.
// It relies on AuthMiddleware having already set the business_id.
func BusinessGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetBusinessID(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "business context required"},
			})
			return
		}
		c.Next()
	}
}
