package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/diogo/agentchat/internal/models"
)

const openAIDefaultModel = "gpt-4o"

func init() {
	Register("openai", NewOpenAIAgent)
}

// OpenAIAgent replies through the chat completions API
type OpenAIAgent struct {
	client   openai.Client
	settings Settings
}

// NewOpenAIAgent creates an OpenAIAgent. An API key is required.
func NewOpenAIAgent(s Settings) (Agent, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, fmt.Errorf("openai api key is required (set OPENAI_API_KEY)")
	}
	if strings.TrimSpace(s.Model) == "" {
		s.Model = openAIDefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}

	slog.Debug("openai_agent_ready", "model", s.Model, "base_url", s.BaseURL)
	return &OpenAIAgent{
		client:   openai.NewClient(opts...),
		settings: s,
	}, nil
}

func (a *OpenAIAgent) Name() string { return a.settings.Name }

// Reply sends the whole thread, preceded by the instructions, and returns
// the first choice.
func (a *OpenAIAgent) Reply(ctx context.Context, thread []models.Message) (string, error) {
	if len(thread) == 0 {
		return "", fmt.Errorf("thread is empty")
	}

	resp, err := a.client.Chat.Completions.New(ctx, a.buildParams(thread))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *OpenAIAgent) buildParams(thread []models.Message) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(thread)+1)
	if a.settings.Instructions != "" {
		messages = append(messages, openai.SystemMessage(a.settings.Instructions))
	}
	for _, msg := range thread {
		if msg.Role == models.RoleUser {
			messages = append(messages, openai.UserMessage(msg.Text))
		} else {
			messages = append(messages, openai.AssistantMessage(msg.Text))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(a.settings.Model),
		Messages: messages,
	}
	if a.settings.Temperature > 0 {
		params.Temperature = openai.Float(a.settings.Temperature)
	}
	if a.settings.TopP > 0 {
		params.TopP = openai.Float(a.settings.TopP)
	}
	return params
}
