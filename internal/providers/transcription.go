// Package providers talks to the upstream speech-to-text and chat-completion APIs.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const (
	TranscriptionModel    = "gpt-4o-transcribe"
	TranscriptionLanguage = "ja"
)

// TranscriptionClient posts audio to an OpenAI-compatible /audio/transcriptions endpoint
type TranscriptionClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTranscriptionClient creates a client. A nil httpClient uses a client without a timeout.
func NewTranscriptionClient(apiKey, baseURL string, httpClient *http.Client) *TranscriptionClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &TranscriptionClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Transcribe uploads the audio bytes unchanged and returns the transcript text.
// A response without a non-empty "text" field is reported as a *ProviderError, whatever the status code.
func (c *TranscriptionClient) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	body, contentType, err := buildTranscriptionForm(audio, filename)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", contentType)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcription response: %w", err)
	}
	if !json.Valid(raw) {
		return "", fmt.Errorf("decode transcription response: invalid JSON (status %d)", httpResp.StatusCode)
	}

	// Non-object payloads and a non-string text decode to an empty Text
	var response transcriptionResponse
	_ = json.Unmarshal(raw, &response)
	if response.Text == "" {
		return "", newProviderError(httpResp.StatusCode, raw)
	}

	return response.Text, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func buildTranscriptionForm(audio []byte, filename string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filePart, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create file form field: %w", err)
	}
	if _, err := filePart.Write(audio); err != nil {
		return nil, "", fmt.Errorf("write audio data: %w", err)
	}
	if err := writer.WriteField("model", TranscriptionModel); err != nil {
		return nil, "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.WriteField("language", TranscriptionLanguage); err != nil {
		return nil, "", fmt.Errorf("write language field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
