package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminGate rejects every request on its chain when admin mutations are
// disabled. The flag is resolved once at startup and threaded in here, so
// no handler consults the environment.
func AdminGate(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin mutations are disabled"})
			return
		}
		c.Next()
	}
}
