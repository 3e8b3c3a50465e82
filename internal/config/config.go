// Package config handles configuration loading for agentchat.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/agentchat/internal/errors"
	"github.com/diogo/agentchat/internal/models"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // glamour style name or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// LogConfig configures the structured log sink
type LogConfig struct {
	Level  string `json:"level"`          // debug, info, warn, error
	Format string `json:"format"`         // json or text
	File   string `json:"file,omitempty"` // defaults to <config dir>/logs/agentchat.log
}

// ServerConfig configures the chat backend
type ServerConfig struct {
	Addr             string  `json:"addr"`
	// Provider selects the agent implementation: openai, google or echo.
	Provider         string  `json:"provider"`
	// Model overrides the provider's default model when set.
	Model            string  `json:"model,omitempty"`
	AgentName        string  `json:"agent_name"`
	InstructionsFile string  `json:"instructions_file"`
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"top_p"`
	AllowedOrigin    string  `json:"allowed_origin"`
	OpenAIBaseURL    string  `json:"openai_base_url,omitempty"`

	// Keys are only ever read from the environment.
	OpenAIAPIKey string `json:"-"`
	GeminiAPIKey string `json:"-"`
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the base URL of the backend serving /api/chat.
	Endpoint        string         `json:"endpoint"`
	Greeting        string         `json:"greeting,omitempty"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
	Log             LogConfig      `json:"log"`
	Server          ServerConfig   `json:"server"`
}

// Environment variables that override file values
const (
	EnvEndpoint      = "AGENTCHAT_ENDPOINT"
	EnvAddr          = "AGENTCHAT_ADDR"
	EnvProvider      = "AGENTCHAT_PROVIDER"
	EnvModel         = "AGENTCHAT_MODEL"
	EnvLogLevel      = "AGENTCHAT_LOG_LEVEL"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvTemperature   = "AGENTCHAT_TEMPERATURE"
)

// configPathOverride replaces the default config file location when set
var configPathOverride string

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultServerConfig returns the default backend configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:             "0.0.0.0:5000",
		Provider:         "openai",
		AgentName:        "PizzaOrderAgent",
		InstructionsFile: "instructions.txt",
		Temperature:      0.7,
		TopP:             0.7,
		AllowedOrigin:    "*",
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:        models.DefaultBaseURL,
		Greeting:        models.DefaultGreeting,
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		Markdown:        DefaultMarkdownConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: DefaultServerConfig(),
	}
}

// SetConfigPath points LoadConfig and SaveConfig at a specific file.
// An empty path restores the default location.
func SetConfigPath(path string) {
	configPathOverride = path
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if configPathOverride != "" {
		return filepath.Dir(configPathOverride), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".agentchat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	if configPathOverride != "" {
		return configPathOverride, nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			ApplyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = DefaultConfig()
		ApplyEnv(&cfg)
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyEnv(&cfg)
	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFiles reads KEY=VALUE pairs from the given dotenv files into the
// process environment without overriding variables that are already set.
// Missing files are ignored. With no arguments ".env" is tried.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with values from the environment
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvProvider)); v != "" {
		cfg.Server.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvModel)); v != "" {
		cfg.Server.Model = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTemperature)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Server.Temperature = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvOpenAIBaseURL)); v != "" {
		cfg.Server.OpenAIBaseURL = v
	}

	// Values pasted from portal UIs often arrive quoted.
	cfg.Server.OpenAIAPIKey = strings.Trim(strings.TrimSpace(os.Getenv(EnvOpenAIKey)), `"`)
	cfg.Server.GeminiAPIKey = strings.Trim(strings.TrimSpace(os.Getenv(EnvGeminiKey)), `"`)
}

// Validate checks the values the client and server depend on
func (c Config) Validate() error {
	if err := ValidateEndpoint(c.Endpoint); err != nil {
		return err
	}
	if c.Server.Temperature < 0 || c.Server.Temperature > 2 {
		return apierrors.NewConfigError("server.temperature", "must be between 0 and 2")
	}
	if c.Server.TopP < 0 || c.Server.TopP > 1 {
		return apierrors.NewConfigError("server.top_p", "must be between 0 and 1")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return apierrors.NewConfigError("server.addr", "cannot be empty")
	}
	return nil
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return apierrors.NewConfigError("endpoint", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apierrors.NewConfigError("endpoint", "must be an http or https URL")
	}
	if u.Host == "" {
		return apierrors.NewConfigError("endpoint", "missing host")
	}
	return nil
}

// AvailableProviders returns the agent providers the backend understands
func AvailableProviders() []string {
	return []string{
		"openai",
		"google",
		"echo",
	}
}
