package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth gates requests behind a shared API key passed in the X-API-Key
// header. An empty configured key disables the gate.
func APIKeyAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				NewProblem("Unauthorized", http.StatusUnauthorized, "missing or invalid API key", c.Request.URL.Path))
			return
		}
		c.Next()
	}
}
