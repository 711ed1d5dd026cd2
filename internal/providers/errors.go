package providers

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrSummaryUnavailable marks a summarization result that could not be produced from the
// provider's answer. Callers treat it as best effort and fall back to empty fields.
var ErrSummaryUnavailable = errors.New("summary unavailable")

// ProviderError carries a provider payload that did not contain the expected result.
// Its message is the payload itself, compacted to a single line.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return e.Body
}

func newProviderError(statusCode int, body []byte) *ProviderError {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return &ProviderError{StatusCode: statusCode, Body: string(body)}
	}
	return &ProviderError{StatusCode: statusCode, Body: buf.String()}
}
