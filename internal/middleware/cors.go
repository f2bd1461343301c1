package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORS sets the headers the browser client needs. An empty origin list allows
// any origin.
func CORS(origins ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := "*"
		if len(allowed) > 0 {
			origin = ""
			if o := c.GetHeader("Origin"); allowed[o] {
				origin = o
				c.Header("Vary", "Origin")
			}
		}
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
