package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.memorelay/internal/config"
	"io.winapps.memorelay/internal/handlers"
	"io.winapps.memorelay/internal/middleware"
)

// Dependencies are the upstream clients used by the transcribe endpoint
type Dependencies struct {
	Transcriber handlers.Transcriber
	Summarizer  handlers.Summarizer
}

// NewRouter builds the gin engine. Checks on the transcribe route run in order:
// method (405), provider key (500), shared secret (401), then the handler.
func NewRouter(cfg config.Config, deps Dependencies, logger *zap.SugaredLogger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLoggingMiddleware(logger),
		middleware.RecoveryMiddleware(logger),
	)
	router.NoMethod(middleware.MethodNotAllowed("Use POST"))

	transcribeHandler := handlers.NewTranscribeHandler(cfg.OpenAIAPIKey, deps.Transcriber, deps.Summarizer, logger)
	router.POST(cfg.TranscribePath,
		transcribeHandler.RequireAPIKey(),
		middleware.SharedSecretAuth(cfg.AuthSecret),
		transcribeHandler.Transcribe,
	)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
