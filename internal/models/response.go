package models

// ChatRequest is the body posted to EndpointChat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the body returned by EndpointChat. Exactly one of
// Response or Error is normally set.
type ChatResponse struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
	Status   string `json:"status,omitempty"`

	// StatusCode is the HTTP status the body arrived with. It is not part of
	// the wire format.
	StatusCode int `json:"-"`
}

// ReplyText picks the text the agent turn should show for this response:
// the response if present, otherwise the error, otherwise FallbackReply.
func (r *ChatResponse) ReplyText() string {
	if r == nil {
		return FallbackReply
	}
	if r.Response != "" {
		return r.Response
	}
	if r.Error != "" {
		return r.Error
	}
	return FallbackReply
}

// HealthResponse is the body returned by EndpointHealth
type HealthResponse struct {
	Status   string `json:"status"`
	Agent    string `json:"agent"`
	ThreadID string `json:"thread_id"`
}
