package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderCronSecret carries the shared secret of the external scheduler.
const HeaderCronSecret = "X-Cron-Secret"

// CronSecret guards task endpoints with a shared secret. An empty secret
// disables the endpoints entirely.
func CronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   gin.H{"code": "NOT_FOUND", "message": "resource not found"},
			})
			return
		}
		got := c.GetHeader(HeaderCronSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid cron secret"},
			})
			return
		}
		c.Next()
	}
}
