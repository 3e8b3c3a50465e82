// Package conversation holds the state behind the chat view: the ordered
// turns, the draft being typed and whether a reply is pending.
//
// A Conversation is owned by a single event loop and is not safe for
// concurrent use. The network call itself happens elsewhere; Submit hands
// out the text to send and Complete records how it went.
package conversation

import (
	"context"
	"strings"

	"github.com/diogo/agentchat/internal/api"
	"github.com/diogo/agentchat/internal/models"
)

// Conversation is an append-only list of turns plus the draft and the
// pending flag.
type Conversation struct {
	messages []models.Message
	draft    string
	pending  bool
}

// New starts a conversation seeded with one agent greeting. An empty
// greeting uses models.DefaultGreeting.
func New(greeting string) *Conversation {
	if strings.TrimSpace(greeting) == "" {
		greeting = models.DefaultGreeting
	}
	return &Conversation{
		messages: []models.Message{models.AgentMessage(greeting)},
	}
}

// Messages returns a copy of the turns in display order
func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of turns
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent turn
func (c *Conversation) Last() models.Message {
	return c.messages[len(c.messages)-1]
}

// Draft returns the text typed but not yet sent
func (c *Conversation) Draft() string {
	return c.draft
}

// SetDraft replaces the draft. Input is disabled while a reply is pending,
// so the call is ignored then.
func (c *Conversation) SetDraft(draft string) {
	if c.pending {
		return
	}
	c.draft = draft
}

// Pending reports whether a reply is awaited
func (c *Conversation) Pending() bool {
	return c.pending
}

// CanSubmit reports whether Submit would do anything
func (c *Conversation) CanSubmit() bool {
	return !c.pending && strings.TrimSpace(c.draft) != ""
}

// Submit moves the draft into the conversation as a user turn, clears the
// draft and marks a reply as pending. It returns the text to post. When the
// draft is blank or a reply is already pending nothing changes and ok is
// false.
func (c *Conversation) Submit() (message string, ok bool) {
	if !c.CanSubmit() {
		return "", false
	}

	message = c.draft
	c.messages = append(c.messages, models.UserMessage(message))
	c.draft = ""
	c.pending = true
	return message, true
}

// Complete records the outcome of the pending request as an agent turn and
// clears the pending flag. It is ignored when nothing is pending.
func (c *Conversation) Complete(resp *models.ChatResponse, err error) (models.Message, bool) {
	if !c.pending {
		return models.Message{}, false
	}

	reply := models.AgentMessage(ReplyText(resp, err))
	c.messages = append(c.messages, reply)
	c.pending = false
	return reply, true
}

// Send runs a whole exchange synchronously: Submit, one Chat call, Complete.
// It reports whether a request was made.
func (c *Conversation) Send(ctx context.Context, client api.ChatClient) bool {
	message, ok := c.Submit()
	if !ok {
		return false
	}

	resp, err := client.Chat(ctx, message)
	c.Complete(resp, err)
	return true
}

// ReplyText maps the result of a chat call to the text of the agent turn.
// Any error means the request never produced a usable reply.
func ReplyText(resp *models.ChatResponse, err error) string {
	if err != nil {
		return models.NetworkErrorReply
	}
	return resp.ReplyText()
}
