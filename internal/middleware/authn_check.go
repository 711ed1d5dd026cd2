package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "io.winapps.memorelay/internal/models/transcribe"
)

const bearerPrefix = "Bearer "

// SharedSecretAuth requires the Authorization header to equal "Bearer <secret>" exactly.
// An empty secret rejects every request.
//
// The comparison is a plain string equality, not constant time.
func SharedSecretAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if secret == "" || authHeader != bearerPrefix+secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewErrorResponse("unauthorized"))
			return
		}
		c.Next()
	}
}
