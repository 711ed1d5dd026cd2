package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.memorelay/internal/audio"
	models "io.winapps.memorelay/internal/models/transcribe"
	"io.winapps.memorelay/internal/providers"
)

// Transcriber turns audio into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Summarizer produces a title and summary for a transcript
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (providers.Summary, error)
}

type TranscribeHandler struct {
	apiKey      string
	transcriber Transcriber
	summarizer  Summarizer
	logger      *zap.SugaredLogger
}

// NewTranscribeHandler creates a new transcribe handler
func NewTranscribeHandler(apiKey string, transcriber Transcriber, summarizer Summarizer, logger *zap.SugaredLogger) *TranscribeHandler {
	return &TranscribeHandler{
		apiKey:      apiKey,
		transcriber: transcriber,
		summarizer:  summarizer,
		logger:      logger,
	}
}

// RequireAPIKey fails closed when no provider key is configured, before authentication runs
func (h *TranscribeHandler) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.apiKey == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.NewErrorResponse("Missing OPENAI_API_KEY"))
			return
		}
		c.Next()
	}
}

// Transcribe relays base64 audio to the transcription provider and, unless disabled,
// the transcript to the summarization provider.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, fmt.Errorf("read request body: %w", err))
		return
	}

	req := models.ParseTranscribeRequest(body)
	if req.InvalidAudio != "" {
		h.fail(c, fmt.Errorf("audio_base64 must be a base64 string, got %s", req.InvalidAudio))
		return
	}
	if req.AudioBase64 == "" {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("no audio"))
		return
	}

	resp, err := h.relay(context.WithoutCancel(c.Request.Context()), c, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TranscribeHandler) relay(ctx context.Context, c *gin.Context, req models.TranscribeRequest) (models.TranscribeResponse, error) {
	audioData := audio.DecodeBase64(req.AudioBase64)

	text, err := h.transcriber.Transcribe(ctx, audioData, req.Filename)
	if err != nil {
		return models.TranscribeResponse{}, err
	}

	resp := models.TranscribeResponse{OK: true, Text: text}
	if !req.DoSummary {
		return resp, nil
	}

	summary, err := h.summarizer.Summarize(ctx, text)
	switch {
	case errors.Is(err, providers.ErrSummaryUnavailable):
		h.logWarn(c, "summary skipped", "error", err)
	case err != nil:
		return models.TranscribeResponse{}, err
	default:
		resp.Title = summary.Title
		resp.Summary = summary.Summary
	}

	return resp, nil
}

// fail reports any unexpected failure as a 500 carrying the error text.
// The message is err.Error() as is, with no "Error: " style prefix.
func (h *TranscribeHandler) fail(c *gin.Context, err error) {
	var providerErr *providers.ProviderError
	if errors.As(err, &providerErr) {
		h.logError(c, err, "transcription provider returned no text", "provider_status", providerErr.StatusCode)
	} else {
		h.logError(c, err, "transcribe request failed")
	}
	c.JSON(http.StatusInternalServerError, models.NewErrorResponse(err.Error()))
}
