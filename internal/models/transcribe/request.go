package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

const DefaultFilename = "memo.m4a"

// TranscribeRequest is the decoded request body. Fields are read one by one so that a
// wrongly typed field never fails the whole body.
type TranscribeRequest struct {
	AudioBase64 string // Base64 encoded audio data
	// InvalidAudio holds the JSON text of a truthy audio_base64 that is not a string
	InvalidAudio string
	Filename     string
	DoSummary    bool
}

// ParseTranscribeRequest decodes a raw body. An unparseable body yields the zero-field
// request (no audio, default filename, summary on), never an error.
func ParseTranscribeRequest(body []byte) TranscribeRequest {
	req := TranscribeRequest{Filename: DefaultFilename, DoSummary: true}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return req
	}

	if raw, ok := fields["audio_base64"]; ok {
		var audio string
		if err := json.Unmarshal(raw, &audio); err == nil {
			req.AudioBase64 = audio
		} else if truthy(raw) {
			req.InvalidAudio = compactJSON(raw)
		}
	}
	// The default applies only to an absent filename; other values are sent as their text
	if raw, ok := fields["filename"]; ok {
		var filename string
		if err := json.Unmarshal(raw, &filename); err == nil && strings.TrimSpace(string(raw)) != "null" {
			req.Filename = filename
		} else {
			req.Filename = compactJSON(raw)
		}
	}
	if raw, ok := fields["do_summary"]; ok {
		req.DoSummary = truthy(raw)
	}

	return req
}

// truthy treats false, null, 0 and "" as false; everything else, including [] and {}, is true
func truthy(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	switch s {
	case "", "false", "null", `""`:
		return false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	return true
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
