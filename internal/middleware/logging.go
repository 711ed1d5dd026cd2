package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	models "io.winapps.memorelay/internal/models/transcribe"
)

// RequestIDMiddleware ensures every request has a request_id available in headers and context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set("request_id", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// errorBodyWriter keeps a copy of the response body only once an error status is written
type errorBodyWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *errorBodyWriter) Write(b []byte) (int, error) {
	if w.Status() >= http.StatusBadRequest {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// RequestLoggingMiddleware logs one line per request; error responses include their body.
// Success bodies carry transcripts and are never captured.
func RequestLoggingMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ebw := &errorBodyWriter{ResponseWriter: c.Writer}
		c.Writer = ebw

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes_in", c.Request.ContentLength,
			"bytes_out", c.Writer.Size(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Errorw("transcribe relay request failed", append(fields, "response", ebw.body.String())...)
		case status >= http.StatusBadRequest:
			logger.Warnw("transcribe relay request rejected", append(fields, "response", ebw.body.String())...)
		default:
			logger.Infow("transcribe relay request served", fields...)
		}
	}
}

// RecoveryMiddleware converts panics to 500 {ok:false} responses and logs stack traces with context
func RecoveryMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered",
					"request_id", c.GetString("request_id"),
					"panic", r,
					"stack", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"client_ip", c.ClientIP(),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.NewErrorResponse(fmt.Sprint(r)))
			}
		}()
		c.Next()
	}
}


