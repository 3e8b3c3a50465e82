package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkErrorWithEndpoint("chat", "http://localhost:5000/api/chat", cause)

	expected := "network error during chat at http://localhost:5000/api/chat: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	if !errors.Is(err, ErrNetwork) {
		t.Error("Expected errors.Is(err, ErrNetwork) to be true")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected NetworkError to unwrap to its cause")
	}

	wrapped := fmt.Errorf("send failed: %w", err)
	if !IsNetworkError(wrapped) {
		t.Error("Expected IsNetworkError to see through wrapping")
	}
	if GetEndpoint(wrapped) != "http://localhost:5000/api/chat" {
		t.Errorf("GetEndpoint() = %q", GetEndpoint(wrapped))
	}
}

func TestNetworkError_NoEndpoint(t *testing.T) {
	err := NewNetworkError("health", errors.New("eof"))
	if err.Error() != "network error during health: eof" {
		t.Errorf("Error() = %s", err.Error())
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(400, "test-endpoint", "test API error")

	expected := "API error [400] at test-endpoint: test API error"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	noStatus := NewAPIError(0, "test-endpoint", "boom")
	if noStatus.Error() != "API error at test-endpoint: boom" {
		t.Errorf("Error() = %s", noStatus.Error())
	}
}

func TestAPIErrorHelpers(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewAPIErrorWithBody(503, "/api/health", "unhealthy", `{"status":"down"}`))

	if !IsAPIError(err) {
		t.Error("Expected IsAPIError to be true")
	}
	if GetHTTPStatus(err) != 503 {
		t.Errorf("GetHTTPStatus() = %d, want 503", GetHTTPStatus(err))
	}
	if GetEndpoint(err) != "/api/health" {
		t.Errorf("GetEndpoint() = %q", GetEndpoint(err))
	}
	if GetResponseBody(err) != `{"status":"down"}` {
		t.Errorf("GetResponseBody() = %q", GetResponseBody(err))
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("body is not JSON", "<html>")

	if err.Error() != "parse error: body is not JSON" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("Expected ParseError to match ErrInvalidResponse")
	}
	if !IsParseError(fmt.Errorf("x: %w", err)) {
		t.Error("Expected IsParseError to be true")
	}
	if IsNetworkError(err) {
		t.Error("ParseError should not be a network error")
	}
}

func TestConfigError(t *testing.T) {
	if got := NewConfigError("endpoint", "must be an http URL").Error(); got != "config error: endpoint: must be an http URL" {
		t.Errorf("Error() = %s", got)
	}
	if got := NewConfigError("", "unreadable").Error(); got != "config error: unreadable" {
		t.Errorf("Error() = %s", got)
	}
}

func TestHelpersOnPlainErrors(t *testing.T) {
	plain := errors.New("plain")

	if GetHTTPStatus(plain) != 0 {
		t.Error("Expected 0 status for plain error")
	}
	if GetEndpoint(plain) != "" {
		t.Error("Expected empty endpoint for plain error")
	}
	if GetResponseBody(plain) != "" {
		t.Error("Expected empty body for plain error")
	}
	if IsNetworkError(nil) {
		t.Error("nil is not a network error")
	}
}

func TestIsConfigError(t *testing.T) {
	if !IsConfigError(fmt.Errorf("load: %w", NewConfigError("endpoint", "bad"))) {
		t.Error("Expected IsConfigError to see through wrapping")
	}
	if IsConfigError(NewParseError("x", "")) {
		t.Error("ParseError is not a config error")
	}
}

func TestSentinels(t *testing.T) {
	sentinels := []error{ErrEmptyMessage, ErrInvalidResponse, ErrNetwork, ErrClientClosed}
	seen := make(map[string]bool)
	for _, err := range sentinels {
		if seen[err.Error()] {
			t.Errorf("duplicate sentinel text %q", err.Error())
		}
		seen[err.Error()] = true
	}

	if !errors.Is(NewNetworkError("chat", errors.New("x")), ErrNetwork) {
		t.Error("NetworkError should match ErrNetwork")
	}
	if errors.Is(NewParseError("x", ""), ErrNetwork) {
		t.Error("ParseError must not match ErrNetwork")
	}
}
