package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"io.winapps.memorelay/internal/config"
	"io.winapps.memorelay/internal/providers"
	"io.winapps.memorelay/internal/server"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if envErr != nil {
		sugar.Infow("No .env file found, using system environment variables")
	}
	if cfg.OpenAIAPIKey == "" {
		sugar.Warnw("OPENAI_API_KEY is not set; transcribe requests will fail")
	}
	if cfg.AuthSecret == "" {
		sugar.Warnw("AUTH_SECRET is not set; transcribe requests will be rejected")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Upstream calls carry no client timeout
	httpClient := &http.Client{}
	deps := server.Dependencies{
		Transcriber: providers.NewTranscriptionClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient),
		Summarizer:  providers.NewChatSummarizer(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient),
	}
	router := server.NewRouter(cfg, deps, sugar)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "path", cfg.TranscribePath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Infow("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sugar.Fatalw("Server forced to shutdown", "error", err)
	}

	sugar.Infow("Server exited")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
