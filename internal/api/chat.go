package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/agentchat/internal/errors"
	"github.com/diogo/agentchat/internal/models"
)

// maxBodyBytes is the largest reply body accepted; anything longer is
// rejected instead of being cut short
const maxBodyBytes = 4 << 20

// Chat posts message to /api/chat and decodes the reply.
//
// Any HTTP status is accepted: a 400 or 500 carrying {"error": "..."} is a
// normal reply, and StatusCode records it. An error is returned only when no
// usable body arrived, as a *errors.NetworkError (transport) or a
// *errors.ParseError (body is not JSON).
func (c *Client) Chat(ctx context.Context, message string) (*models.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apierrors.ErrEmptyMessage
	}
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	url := c.endpoint(models.EndpointChat)

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	c.logger.Debug("chat_request", "endpoint", url, "chars", len(message))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("chat_request_failed", "endpoint", url, "error", err)
		return nil, apierrors.NewNetworkErrorWithEndpoint("chat", url, err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read chat reply", url, err)
	}
	if len(body) > maxBodyBytes {
		c.logger.Warn("chat_reply_too_large", "endpoint", url, "limit_bytes", maxBodyBytes)
		return nil, apierrors.NewParseError(fmt.Sprintf("reply body exceeds %d bytes", maxBodyBytes), "")
	}

	out, err := parseChatResponse(body)
	if err != nil {
		c.logger.Warn("chat_reply_unparseable", "endpoint", url, "status", resp.StatusCode)
		return nil, err
	}
	out.StatusCode = resp.StatusCode

	c.logger.Debug("chat_reply",
		"status", resp.StatusCode,
		"has_response", out.Response != "",
		"has_error", out.Error != "",
	)
	return out, nil
}

// parseChatResponse decodes a reply body. Fields are read with JavaScript
// truthiness so that a reply like {"response": 0} counts as absent, matching
// what browser clients of the same endpoint see.
func parseChatResponse(body []byte) (*models.ChatResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("reply body is not valid JSON", truncate(string(body), 256))
	}

	parsed := gjson.ParseBytes(body)
	if parsed.Type == gjson.Null {
		return nil, apierrors.NewParseError("reply body is null", "")
	}

	out := &models.ChatResponse{}
	if !parsed.IsObject() {
		return out, nil
	}

	if r := parsed.Get("response"); truthy(r) {
		out.Response = r.String()
	}
	if e := parsed.Get("error"); truthy(e) {
		out.Error = e.String()
	}
	if s := parsed.Get("status"); s.Type == gjson.String {
		out.Status = s.String()
	}
	return out, nil
}

// truthy mirrors JavaScript truthiness for a decoded JSON value
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.True:
		return true
	case gjson.JSON:
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
