package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request: method, path, client, status, latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		marker := "✅"
		switch {
		case status >= 500:
			marker = "❌"
		case status >= 400:
			marker = "⚠️ "
		}
		log.Printf("%s %s %s %s %d %s", marker, c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, time.Since(start))
		for _, e := range c.Errors {
			log.Printf("   ↳ %v", e.Err)
		}
	}
}
