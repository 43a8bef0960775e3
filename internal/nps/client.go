// Package nps is a thin client for the National Park Service API.
// It is a pure pass-through: the caller's query parameters are forwarded
// unmodified plus the configured api_key, and the upstream status and body
// are relayed verbatim. No caching, no retries.
package nps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/excursions-app/backend/internal/domain"
)

// defaultTimeout bounds every upstream call; the upstream is a third party
// and must not be able to hold our request handlers open indefinitely.
const defaultTimeout = 10 * time.Second

// Result is one relayed upstream response.
type Result struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// Client calls the upstream park data service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New constructs a Client for the given base URL and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Get forwards a read-only query to the named upstream endpoint
// ("parks", "campgrounds", "thingstodo"). The caller's query values are
// passed through with the api_key appended.
// Returns domain.ErrUpstream if the upstream cannot be reached or responds
// with a server error; 2xx and 4xx responses are returned for relaying.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (Result, error) {
	q := url.Values{}
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("api_key", c.apiKey)

	u := c.baseURL + "/" + endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, fmt.Errorf("nps.Client.Get: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("nps.Client.Get: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("nps.Client.Get: read body: %w: %w", domain.ErrUpstream, err)
	}

	if resp.StatusCode >= 500 {
		return Result{}, fmt.Errorf("nps.Client.Get: upstream returned %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	return Result{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
