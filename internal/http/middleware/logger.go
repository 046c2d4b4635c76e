package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request. The PDF downloads and the gateway
// callback are the slow paths worth watching, so latency is whole
// milliseconds and the response size is included.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("http request_id=%s method=%s path=%s status=%d bytes=%d latency_ms=%d ip=%s",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).Milliseconds(),
			c.ClientIP(),
		)
	}
}
