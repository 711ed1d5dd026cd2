package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	SummaryModel       = "gpt-4o-mini"
	SummaryTemperature = 0.2

	summarySystemPrompt = "あなたは日本語アシスタントです。以下の文字起こしから30字以内のタイトルと3点の箇条書き要約をJSONで返す。"
	summaryUserTemplate = "文字起こし:\n%s\n\n出力JSON: {\"title\":\"...\", \"summary\":\"- ...\\n- ...\\n- ...\"}"
)

// Summary is the title and bullet summary generated from a transcript
type Summary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// ChatSummarizer asks a chat-completion model for a title and summary of a transcript
type ChatSummarizer struct {
	client *openai.Client
}

func NewChatSummarizer(apiKey, baseURL string, httpClient *http.Client) *ChatSummarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &ChatSummarizer{client: openai.NewClientWithConfig(cfg)}
}

// Summarize returns the parsed title and summary.
//
// Errors wrapping ErrSummaryUnavailable mean the provider answered with JSON that held no
// usable content: an error payload, any other JSON body, or unparseable content.
// Any other error is a transport failure or a non-JSON body.
func (s *ChatSummarizer) Summarize(ctx context.Context, transcript string) (Summary, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: SummaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(summaryUserTemplate, transcript)},
		},
		Temperature: SummaryTemperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return Summary{}, fmt.Errorf("%w: %v", ErrSummaryUnavailable, apiErr)
		}
		// A JSON answer without an error object still carries no choices
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) && json.Valid(reqErr.Body) {
			return Summary{}, fmt.Errorf("%w: status %d: %s", ErrSummaryUnavailable, reqErr.HTTPStatusCode, reqErr.Body)
		}
		return Summary{}, fmt.Errorf("chat completion request failed: %w", err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	return parseSummary(content)
}

// parseSummary decodes the model output. Empty content counts as an empty object.
func parseSummary(content string) (Summary, error) {
	if content == "" {
		content = "{}"
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil || fields == nil {
		return Summary{}, fmt.Errorf("%w: content is not a JSON object", ErrSummaryUnavailable)
	}

	return Summary{
		Title:   stringField(fields, "title"),
		Summary: stringField(fields, "summary"),
	}, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	var value string
	if raw, ok := fields[key]; ok {
		_ = json.Unmarshal(raw, &value)
	}
	return value
}
