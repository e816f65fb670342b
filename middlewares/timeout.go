package middlewares

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestBudget is the soft deadline per request, kept under the hosting
// platform's execution limit.
const RequestBudget = 8 * time.Second

// Timeout installs a single context deadline covering all storage and upload
// calls a handler makes, replacing per-call timeout wiring.
func Timeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), RequestBudget)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
