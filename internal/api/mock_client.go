package api

import (
	"context"
	"sync"

	"github.com/diogo/agentchat/internal/models"
)

// MockChatClient is a mock implementation of ChatClient and HealthClient
// for testing
type MockChatClient struct {
	// Mock return values
	ChatResponse *models.ChatResponse
	ChatErr      error
	HealthVal    *models.HealthResponse
	HealthErr    error

	// ChatFunc, when set, takes precedence over ChatResponse/ChatErr
	ChatFunc func(ctx context.Context, message string) (*models.ChatResponse, error)

	mu       sync.Mutex
	messages []string
}

var (
	_ ChatClient   = (*MockChatClient)(nil)
	_ HealthClient = (*MockChatClient)(nil)
)

func (m *MockChatClient) Chat(ctx context.Context, message string) (*models.ChatResponse, error) {
	m.mu.Lock()
	m.messages = append(m.messages, message)
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, message)
	}
	return m.ChatResponse, m.ChatErr
}

func (m *MockChatClient) Health(ctx context.Context) (*models.HealthResponse, error) {
	return m.HealthVal, m.HealthErr
}

// Messages returns every message passed to Chat, in call order
func (m *MockChatClient) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out
}

// Calls returns how many times Chat was called
func (m *MockChatClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}
