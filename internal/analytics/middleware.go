package analytics

import (
	"github.com/gin-gonic/gin"
)

// Middleware records every request it wraps unless the visitor sent DNT.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		if err := t.Record(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), c.Request.URL.Path); err != nil {
			t.logger.Warn("error recording visitor", "err", err)
		}
		c.Next()
	}
}
