package agent

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/diogo/agentchat/internal/models"
)

// Thread is the ordered transcript an agent works on. Runs are serialised
// so the transcript order is the run order.
type Thread struct {
	id string

	mu       sync.Mutex
	messages []models.Message
}

// NewThread creates an empty thread with a random id
func NewThread() *Thread {
	return &Thread{id: uuid.NewString()}
}

// ID returns the thread id
func (t *Thread) ID() string {
	return t.id
}

// Messages returns a copy of the transcript
func (t *Thread) Messages() []models.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Run appends text as a user turn and asks a for a reply. A non-empty reply
// is appended as an agent turn. The user turn stays in the thread even when
// the run fails.
func (t *Thread) Run(ctx context.Context, a Agent, text string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, models.UserMessage(text))

	snapshot := make([]models.Message, len(t.messages))
	copy(snapshot, t.messages)

	reply, err := a.Reply(ctx, snapshot)
	if err != nil {
		return "", err
	}
	if reply != "" {
		t.messages = append(t.messages, models.AgentMessage(reply))
	}
	return reply, nil
}
