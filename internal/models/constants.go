// Package models contains data types and constants shared by the chat view,
// the endpoint client and the backend.
package models

// Endpoint paths served by the backend
const (
	EndpointChat   = "/api/chat"
	EndpointHealth = "/api/health"
)

// DefaultBaseURL is where the chat view looks for the backend when nothing
// else is configured.
const DefaultBaseURL = "http://localhost:5000"

// Fixed texts shown in the conversation
const (
	// DefaultGreeting seeds every new conversation
	DefaultGreeting = "Hi, I'm Alex! How can I help you today :)?"

	// FallbackReply is shown when a reply carries neither a response nor an error
	FallbackReply = "No response from agent."

	// NetworkErrorReply is shown when the request never produced a usable body
	NetworkErrorReply = "Network error."

	// TypingIndicator is shown while a reply is pending
	TypingIndicator = "Agent is typing..."

	// EmptyReplyText is what the backend answers when the agent turn has no text
	EmptyReplyText = "I couldn't generate a response."
)

// Server-side error texts returned in the "error" field
const (
	ErrTextInvalidPayload = "Invalid or missing JSON payload"
	ErrTextNoMessage      = "No message provided"
	ErrTextRunFailed      = "Run failed"
)

// DefaultHeaders returns the headers sent with every chat request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
	}
}
