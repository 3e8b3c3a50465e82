package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/agentchat/internal/errors"
	"github.com/diogo/agentchat/internal/models"
)

func newTestClient(t *testing.T, mock *MockHttpClient) *Client {
	t.Helper()
	c, err := NewClient("http://localhost:5000/", WithHTTPClient(mock))
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	return c
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"http", "http://localhost:5000", false},
		{"https with path", "https://chat.example.com/", false},
		{"missing scheme", "localhost:5000", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.baseURL, WithHTTPClient(&MockHttpClient{}))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient(%q) error = %v, wantErr %v", tt.baseURL, err, tt.wantErr)
			}
		})
	}
}

func TestNewClient_DefaultTransport(t *testing.T) {
	c, err := NewClient("http://localhost:5000", WithTimeoutSeconds(5))
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	defer c.Close()

	if c.httpClient == nil {
		t.Fatal("expected a default HTTP client")
	}
	if c.timeoutSeconds != 5 {
		t.Errorf("timeoutSeconds = %d, want 5", c.timeoutSeconds)
	}
}

func TestClient_BaseURLTrimmed(t *testing.T) {
	c := newTestClient(t, &MockHttpClient{})
	if c.BaseURL() != "http://localhost:5000" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
}

func TestClient_Close(t *testing.T) {
	mock := &MockHttpClient{}
	c := newTestClient(t, mock)

	c.Close()
	c.Close()

	if !c.IsClosed() {
		t.Error("expected client to be closed")
	}
	if !mock.IdleClosed {
		t.Error("expected idle connections to be closed")
	}

	_, err := c.Chat(context.Background(), "hello")
	if !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("Chat() after Close error = %v, want ErrClientClosed", err)
	}
	_, err = c.Health(context.Background())
	if !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("Health() after Close error = %v, want ErrClientClosed", err)
	}
}

func TestChat_Request(t *testing.T) {
	mock := NewMockHttpClient([]byte(`{"response":"hi","status":"success"}`), 200)
	c := newTestClient(t, mock)

	if _, err := c.Chat(context.Background(), "  two large pizzas  "); err != nil {
		t.Fatalf("Chat() returned error: %v", err)
	}

	if len(mock.Requests) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(mock.Requests))
	}
	req := mock.Requests[0]
	if req.Method != fhttp.MethodPost {
		t.Errorf("Method = %s, want POST", req.Method)
	}
	if req.URL.String() != "http://localhost:5000/api/chat" {
		t.Errorf("URL = %s", req.URL.String())
	}
	if len(req.Header) != 1 || req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("headers = %v, want only Content-Type: application/json", req.Header)
	}

	var body models.ChatRequest
	if err := json.Unmarshal([]byte(mock.Bodies[0]), &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	// The draft is sent as typed, surrounding whitespace included.
	if body.Message != "  two large pizzas  " {
		t.Errorf("message = %q", body.Message)
	}
}

func TestChat_BodySizeLimit(t *testing.T) {
	fits := `{"response":"` + strings.Repeat("a", maxBodyBytes-len(`{"response":""}`)) + `"}`
	resp, err := newTestClient(t, NewMockHttpClient([]byte(fits), 200)).Chat(context.Background(), "hi")
	if err != nil {
		t.Fatalf("reply at the limit should parse, got %v", err)
	}
	if len(resp.Response) != maxBodyBytes-len(`{"response":""}`) {
		t.Errorf("response length = %d", len(resp.Response))
	}

	tooLarge := `{"response":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	_, err = newTestClient(t, NewMockHttpClient([]byte(tooLarge), 200)).Chat(context.Background(), "hi")
	if !apierrors.IsParseError(err) {
		t.Fatalf("expected a ParseError, got %v", err)
	}
	if !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("error should name the size limit, got %q", err.Error())
	}
}

func TestChat_Replies(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		status       int
		wantResponse string
		wantError    string
		wantReply    string
	}{
		{
			name:         "response",
			body:         `{"response":"X","status":"success"}`,
			status:       200,
			wantResponse: "X",
			wantReply:    "X",
		},
		{
			name:      "error only",
			body:      `{"error":"bad"}`,
			status:    200,
			wantError: "bad",
			wantReply: "bad",
		},
		{
			name:      "empty object",
			body:      `{}`,
			status:    200,
			wantReply: models.FallbackReply,
		},
		{
			name:      "empty response string falls through to error",
			body:      `{"response":"","error":"No response from agent"}`,
			status:    500,
			wantError: "No response from agent",
			wantReply: "No response from agent",
		},
		{
			name:      "400 with error body is a normal reply",
			body:      `{"error":"No message provided"}`,
			status:    400,
			wantError: "No message provided",
			wantReply: "No message provided",
		},
		{
			name:      "falsy number response",
			body:      `{"response":0}`,
			status:    200,
			wantReply: models.FallbackReply,
		},
		{
			name:         "numeric response",
			body:         `{"response":42}`,
			status:       200,
			wantResponse: "42",
			wantReply:    "42",
		},
		{
			name:      "array body",
			body:      `["x"]`,
			status:    200,
			wantReply: models.FallbackReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockHttpClient([]byte(tt.body), tt.status)
			c := newTestClient(t, mock)

			resp, err := c.Chat(context.Background(), "Y")
			if err != nil {
				t.Fatalf("Chat() returned error: %v", err)
			}
			if resp.Response != tt.wantResponse {
				t.Errorf("Response = %q, want %q", resp.Response, tt.wantResponse)
			}
			if resp.Error != tt.wantError {
				t.Errorf("Error = %q, want %q", resp.Error, tt.wantError)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", resp.StatusCode, tt.status)
			}
			if got := resp.ReplyText(); got != tt.wantReply {
				t.Errorf("ReplyText() = %q, want %q", got, tt.wantReply)
			}
		})
	}
}

func TestChat_Failures(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		c := newTestClient(t, NewMockHttpClientWithError(errors.New("connection refused")))

		_, err := c.Chat(context.Background(), "hello")
		if !apierrors.IsNetworkError(err) {
			t.Fatalf("expected network error, got %v", err)
		}
		if apierrors.GetEndpoint(err) != "http://localhost:5000/api/chat" {
			t.Errorf("endpoint = %q", apierrors.GetEndpoint(err))
		}
	})

	t.Run("body read error", func(t *testing.T) {
		body := NewMockResponseBody([]byte(`{"resp`))
		body.err = errors.New("connection reset")
		mock := &MockHttpClient{Response: &fhttp.Response{StatusCode: 200, Body: body, Header: make(fhttp.Header)}}
		c := newTestClient(t, mock)

		_, err := c.Chat(context.Background(), "hello")
		if !apierrors.IsNetworkError(err) {
			t.Fatalf("expected network error, got %v", err)
		}
	})

	t.Run("html body", func(t *testing.T) {
		c := newTestClient(t, NewMockHttpClient([]byte("<html>502 Bad Gateway</html>"), 502))

		_, err := c.Chat(context.Background(), "hello")
		if !apierrors.IsParseError(err) {
			t.Fatalf("expected parse error, got %v", err)
		}
	})

	t.Run("null body", func(t *testing.T) {
		c := newTestClient(t, NewMockHttpClient([]byte("null"), 200))

		_, err := c.Chat(context.Background(), "hello")
		if !apierrors.IsParseError(err) {
			t.Fatalf("expected parse error, got %v", err)
		}
	})

	t.Run("blank message", func(t *testing.T) {
		mock := NewMockHttpClient([]byte(`{}`), 200)
		c := newTestClient(t, mock)

		_, err := c.Chat(context.Background(), "   ")
		if !errors.Is(err, apierrors.ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage, got %v", err)
		}
		if len(mock.Requests) != 0 {
			t.Error("no request should be sent for a blank message")
		}
	})
}

func TestChat_ClosesBody(t *testing.T) {
	mock := NewMockHttpClient([]byte(`{"response":"ok"}`), 200)
	c := newTestClient(t, mock)

	if _, err := c.Chat(context.Background(), "hello"); err != nil {
		t.Fatalf("Chat() returned error: %v", err)
	}
	if !mock.Response.Body.(*MockResponseBody).closed {
		t.Error("response body was not closed")
	}
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		mock := NewMockHttpClient([]byte(`{"status":"healthy","agent":"PizzaOrderAgent","thread_id":"abc"}`), 200)
		c := newTestClient(t, mock)

		health, err := c.Health(context.Background())
		if err != nil {
			t.Fatalf("Health() returned error: %v", err)
		}
		if health.Status != "healthy" || health.Agent != "PizzaOrderAgent" || health.ThreadID != "abc" {
			t.Errorf("Health() = %+v", health)
		}
		if mock.Requests[0].Method != fhttp.MethodGet {
			t.Errorf("Method = %s, want GET", mock.Requests[0].Method)
		}
		if mock.Requests[0].URL.Path != models.EndpointHealth {
			t.Errorf("Path = %s", mock.Requests[0].URL.Path)
		}
	})

	t.Run("unhealthy status", func(t *testing.T) {
		c := newTestClient(t, NewMockHttpClient([]byte(`{"status":"down"}`), 503))

		_, err := c.Health(context.Background())
		if apierrors.GetHTTPStatus(err) != 503 {
			t.Fatalf("expected 503 API error, got %v", err)
		}
		if apierrors.GetResponseBody(err) != `{"status":"down"}` {
			t.Errorf("body = %q", apierrors.GetResponseBody(err))
		}
	})

	t.Run("network error", func(t *testing.T) {
		c := newTestClient(t, NewMockHttpClientWithError(errors.New("dial tcp: refused")))

		_, err := c.Health(context.Background())
		if !apierrors.IsNetworkError(err) {
			t.Fatalf("expected network error, got %v", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		c := newTestClient(t, NewMockHttpClient([]byte(`ok`), 200))

		_, err := c.Health(context.Background())
		if !apierrors.IsParseError(err) {
			t.Fatalf("expected parse error, got %v", err)
		}
	})
}

func TestMockChatClient(t *testing.T) {
	mock := &MockChatClient{ChatResponse: &models.ChatResponse{Response: "hi"}}

	resp, err := mock.Chat(context.Background(), "one")
	if err != nil || resp.Response != "hi" {
		t.Fatalf("Chat() = %+v, %v", resp, err)
	}

	mock.ChatFunc = func(ctx context.Context, message string) (*models.ChatResponse, error) {
		return nil, errors.New("boom")
	}
	if _, err := mock.Chat(context.Background(), "two"); err == nil {
		t.Error("expected ChatFunc error")
	}

	if mock.Calls() != 2 {
		t.Errorf("Calls() = %d, want 2", mock.Calls())
	}
	msgs := mock.Messages()
	if msgs[0] != "one" || msgs[1] != "two" {
		t.Errorf("Messages() = %v", msgs)
	}
}
