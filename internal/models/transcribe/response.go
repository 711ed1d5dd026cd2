package models

// TranscribeResponse is returned with 200. Title and Summary are empty when summarization
// was skipped or its output could not be parsed.
type TranscribeResponse struct {
	OK      bool   `json:"ok"`
	Text    string `json:"text"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// ErrorResponse is the body of every non-200 reply
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{OK: false, Error: msg}
}
