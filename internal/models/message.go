package models

// Role identifies who authored a turn
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Label returns the prefix shown before a turn in the message list
func (r Role) Label() string {
	if r == RoleUser {
		return "You"
	}
	return "Agent"
}

// Message is a single turn in a conversation. It is never mutated once
// appended.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// UserMessage builds a user turn
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// AgentMessage builds an agent turn
func AgentMessage(text string) Message {
	return Message{Role: RoleAgent, Text: text}
}
