// Package api implements the scope-list port against the backend's
// JSON REST endpoints.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nlegrand-dev/obslens/internal/domain"
	"github.com/nlegrand-dev/obslens/internal/ports"
)

const maxResponseBytes = 4 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.ScopeLister = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

type scopePayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	TeamID    string    `json:"teamId,omitempty"`
}

// List fetches the scopes of one kind in backend order. Order is
// preserved as returned; auto-selection depends on it.
func (c *Client) List(ctx context.Context, kind domain.ScopeKind) ([]domain.Scope, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown scope kind %q", kind)
	}

	endpoint := fmt.Sprintf("%s/api/%ss", c.baseURL, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s list request: %w", kind, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s list: %w", kind, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s list: unexpected status %d", kind, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s list response: %w", kind, err)
	}

	var payload []scopePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode %s list response: %w", kind, err)
	}

	scopes := make([]domain.Scope, 0, len(payload))
	for _, entry := range payload {
		scope := domain.Scope{
			ID:          domain.ScopeID(entry.ID),
			Kind:        kind,
			DisplayName: entry.Name,
			CreatedAt:   entry.CreatedAt,
			TeamID:      domain.ScopeID(entry.TeamID),
		}
		if err := scope.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s in list response: %w", kind, err)
		}
		scopes = append(scopes, scope)
	}

	return scopes, nil
}
