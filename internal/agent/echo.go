package agent

import (
	"context"
	"errors"

	"github.com/diogo/agentchat/internal/models"
)

func init() {
	Register("echo", NewEchoAgent)
}

// EchoAgent answers with the last user message. It needs no credentials
// and is meant for local development.
type EchoAgent struct {
	name string
}

// NewEchoAgent creates an EchoAgent
func NewEchoAgent(s Settings) (Agent, error) {
	return &EchoAgent{name: s.Name}, nil
}

func (a *EchoAgent) Name() string { return a.name }

func (a *EchoAgent) Reply(ctx context.Context, thread []models.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, ok := lastUserText(thread)
	if !ok {
		return "", errors.New("thread has no user message")
	}
	return text, nil
}
