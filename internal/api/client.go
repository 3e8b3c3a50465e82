// Package api provides the client for the agentchat backend endpoint.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/diogo/agentchat/internal/config"
	"github.com/diogo/agentchat/internal/models"
)

// DefaultTimeoutSeconds bounds a single request at the transport level
const DefaultTimeoutSeconds = 300

// ChatClient is the behaviour the chat view and commands need from the
// backend client.
type ChatClient interface {
	Chat(ctx context.Context, message string) (*models.ChatResponse, error)
}

// HealthClient reports the backend's health
type HealthClient interface {
	Health(ctx context.Context) (*models.HealthResponse, error)
}

// Client talks to the backend's /api/chat and /api/health endpoints
type Client struct {
	httpClient     tls_client.HttpClient
	baseURL        string
	timeoutSeconds int
	logger         *slog.Logger
	mu             sync.RWMutex
	closed         bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeoutSeconds sets the transport timeout used when the client builds
// its own HTTP client
func WithTimeoutSeconds(seconds int) ClientOption {
	return func(c *Client) {
		c.timeoutSeconds = seconds
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the backend at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if err := config.ValidateEndpoint(baseURL); err != nil {
		return nil, err
	}

	client := &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeoutSeconds: DefaultTimeoutSeconds,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(client.timeoutSeconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint joins the base URL and a path
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// Close releases idle connections. Requests after Close fail.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

var (
	_ ChatClient   = (*Client)(nil)
	_ HealthClient = (*Client)(nil)
)
