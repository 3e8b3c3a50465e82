package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/diogo/agentchat/internal/models"
)

const googleDefaultModel = "gemini-2.5-flash"

func init() {
	Register("google", NewGoogleAgent)
}

type googleModelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGoogleClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// GoogleAgent replies through the Gemini API
type GoogleAgent struct {
	models   googleModelsClient
	settings Settings
}

// NewGoogleAgent creates a GoogleAgent. An API key is required.
func NewGoogleAgent(s Settings) (Agent, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, fmt.Errorf("google api key is required (set GEMINI_API_KEY)")
	}
	if strings.TrimSpace(s.Model) == "" {
		s.Model = googleDefaultModel
	}

	client, err := newGoogleClient(context.Background(), &genai.ClientConfig{
		APIKey:  s.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create google client: %w", err)
	}

	slog.Debug("google_agent_ready", "model", s.Model)
	return &GoogleAgent{models: client.Models, settings: s}, nil
}

func (a *GoogleAgent) Name() string { return a.settings.Name }

func (a *GoogleAgent) Reply(ctx context.Context, thread []models.Message) (string, error) {
	contents := make([]*genai.Content, 0, len(thread))
	for _, msg := range thread {
		role := genai.RoleUser
		if msg.Role != models.RoleUser {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Text}},
		})
	}
	if len(contents) == 0 {
		return "", fmt.Errorf("thread is empty")
	}

	resp, err := a.models.GenerateContent(ctx, a.settings.Model, contents, a.generateConfig())
	if err != nil {
		return "", err
	}
	return visibleText(resp), nil
}

func (a *GoogleAgent) generateConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if a.settings.Instructions != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: a.settings.Instructions}},
		}
	}
	if a.settings.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(a.settings.Temperature))
	}
	if a.settings.TopP > 0 {
		cfg.TopP = genai.Ptr(float32(a.settings.TopP))
	}
	return cfg
}

// visibleText joins the non-thought text parts of the first candidate
func visibleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
