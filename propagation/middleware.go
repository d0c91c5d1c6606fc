package propagation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware extracts the parent trace context into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := FromRequest(r).Extract(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GinMiddleware creates Gin middleware extracting the parent trace context.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := FromRequest(c.Request).Extract(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
