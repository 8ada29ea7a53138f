package nav

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Gateway resolves a navigation link for a stored courier location.
type Gateway interface {
	TrackingLink(ctx context.Context, location string) (string, error)
}

// statusError carries the HTTP status of a failed route lookup.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("route service returned %d", e.status)
}

// Client talks to an external route service. Given a courier's location
// string and the fixed destination coordinate, it asks for a route and
// returns the navigation URL the route service hands back.
type Client struct {
	baseURL     string
	destination string
	http        *http.Client
}

// NewClient creates a nav Client. Returns nil when no base URL is
// configured; callers then fall back to the raw location string.
func NewClient(baseURL, destination string, timeout time.Duration) *Client {
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:     baseURL,
		destination: destination,
		http:        &http.Client{Timeout: timeout},
	}
}

type routeResponse struct {
	URL string `json:"url"`
}

// TrackingLink asks the route service for a navigation link from the
// courier's location to the configured destination.
func (c *Client) TrackingLink(ctx context.Context, location string) (string, error) {
	q := url.Values{}
	q.Set("from", location)
	q.Set("to", c.destination)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/route?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build route request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("route request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &statusError{status: resp.StatusCode}
	}

	var body routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode route response: %w", err)
	}
	if body.URL == "" {
		return "", fmt.Errorf("route response missing url")
	}
	return body.URL, nil
}
