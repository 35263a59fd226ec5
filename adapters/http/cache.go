package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NeverCache marks responses as uncacheable. All stateful pages use it.
func NeverCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}

// CachePublic allows shared caches to keep the response for d. Used on the
// static search plugin descriptor.
func CachePublic(d time.Duration) gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d", int(d.Seconds()))
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
