package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/podium/internal/domain/pipeline"
	"github.com/okian/podium/internal/domain/types"
)

// client is a small JSON client for the dashboard API.
type client struct {
	base string
	http *http.Client
}

func newClient(base string, timeout time.Duration) *client {
	return &client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	target := c.base + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *client) health(ctx context.Context) error {
	var out map[string]any
	return c.getJSON(ctx, "/healthz", nil, &out)
}

func (c *client) views(ctx context.Context) ([]types.ViewInfo, error) {
	var out []types.ViewInfo
	err := c.getJSON(ctx, "/api/views", nil, &out)
	return out, err
}

func (c *client) filters(ctx context.Context) (types.Filters, error) {
	var out types.Filters
	err := c.getJSON(ctx, "/api/filters", nil, &out)
	return out, err
}

func (c *client) view(ctx context.Context, id pipeline.ViewID, q url.Values) (pipeline.Result, error) {
	var out pipeline.Result
	err := c.getJSON(ctx, "/api/views/"+url.PathEscape(string(id)), q, &out)
	return out, err
}
