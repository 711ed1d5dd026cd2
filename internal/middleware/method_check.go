package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "io.winapps.memorelay/internal/models/transcribe"
)

// MethodNotAllowed answers requests whose path exists only under other methods
func MethodNotAllowed(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, models.NewErrorResponse(msg))
	}
}
