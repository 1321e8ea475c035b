package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a correlation id to each request, honoring one sent
// by the client, and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Set(RequestIDHeader, rid)
		ctx.Writer.Header().Set(RequestIDHeader, rid)
		ctx.Next()
	}
}
