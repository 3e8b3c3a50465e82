package api

import (
	"context"
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/agentchat/internal/errors"
	"github.com/diogo/agentchat/internal/models"
)

// Health calls /api/health. Unlike Chat, a non-200 status is an error.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	url := c.endpoint(models.EndpointHealth)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("health", url, err)
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read health reply", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, url, "health check failed", truncate(string(body), 4096))
	}

	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("health body is not valid JSON", truncate(string(body), 256))
	}

	parsed := gjson.ParseBytes(body)
	return &models.HealthResponse{
		Status:   parsed.Get("status").String(),
		Agent:    parsed.Get("agent").String(),
		ThreadID: parsed.Get("thread_id").String(),
	}, nil
}
