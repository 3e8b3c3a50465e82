// Package agent produces replies for the backend's conversation thread.
//
// Providers register a Factory under a name in init, the way the CLI
// selects them from configuration.
package agent

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/diogo/agentchat/internal/config"
	"github.com/diogo/agentchat/internal/models"
)

// Agent answers the latest user turn of a thread.
type Agent interface {
	Name() string
	Reply(ctx context.Context, thread []models.Message) (string, error)
}

// Settings configures a provider
type Settings struct {
	Name         string
	Model        string
	Instructions string
	Temperature  float64
	TopP         float64
	APIKey       string
	BaseURL      string
}

// Factory builds an Agent from settings
type Factory func(Settings) (Agent, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a provider available under name. Registering the same
// name twice replaces the earlier factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = factory
}

// New builds the agent registered as provider
func New(provider string, settings Settings) (Agent, error) {
	registryMu.RLock()
	factory, ok := registry[strings.ToLower(strings.TrimSpace(provider))]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown agent provider %q (available: %s)", provider, strings.Join(Providers(), ", "))
	}
	if strings.TrimSpace(settings.Name) == "" {
		settings.Name = config.DefaultServerConfig().AgentName
	}
	return factory(settings)
}

// Providers returns the registered provider names, sorted
func Providers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SettingsFromConfig maps the server configuration onto provider settings.
// The API key is chosen for the configured provider.
func SettingsFromConfig(cfg config.ServerConfig, instructions string) Settings {
	s := Settings{
		Name:         cfg.AgentName,
		Model:        cfg.Model,
		Instructions: instructions,
		Temperature:  cfg.Temperature,
		TopP:         cfg.TopP,
	}
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		s.APIKey = cfg.OpenAIAPIKey
		s.BaseURL = cfg.OpenAIBaseURL
	case "google":
		s.APIKey = cfg.GeminiAPIKey
	}
	return s
}

// LoadInstructions reads the system prompt from path. A missing file
// yields empty instructions and found=false.
func LoadInstructions(path string) (instructions string, found bool, err error) {
	if strings.TrimSpace(path) == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read instructions: %w", err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// lastUserText returns the text of the most recent user turn
func lastUserText(thread []models.Message) (string, bool) {
	for i := len(thread) - 1; i >= 0; i-- {
		if thread[i].Role == models.RoleUser {
			return thread[i].Text, true
		}
	}
	return "", false
}
