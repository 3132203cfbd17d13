package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is padding for multipart boundaries and headers.
var multipartOverhead = int64(8 * 1024)

// SizeLimit caps the request body at maxBodyBytes plus multipart overhead.
// Reading past the cap yields *http.MaxBytesError, which upload handlers
// answer with 413.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes+multipartOverhead)
		c.Next()
	}
}
