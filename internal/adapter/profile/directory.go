// Package profile implements the identity collaborator against an external
// HTTP directory service. The engine only ever needs a stable user id and a
// best-effort display profile from it.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	domain "peerlend-backend/internal/domain/profile"
)

type HTTPDirectory struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPDirectory(baseURL string) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (d *HTTPDirectory) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if d == nil || d.baseURL == "" {
		return nil, fmt.Errorf("profile directory not configured")
	}
	url := fmt.Sprintf("%s/profiles/%s", d.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile lookup: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var p domain.Profile
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		if p.UserID == "" {
			p.UserID = userID
		}
		return &p, nil
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	default:
		return nil, fmt.Errorf("profile directory status %d", resp.StatusCode)
	}
}
