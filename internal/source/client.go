package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

const userAgent = "deckpress/0.2 (https://github.com/wedge762/deckpress)"

// Defaults keep the tool polite to the card sites without slowing a normal
// deck down noticeably.
const defaultRequestsPerSecond = 2

// ErrEmptyBody reports a 2xx response whose body carried no bytes at all.
var ErrEmptyBody = errors.New("empty response body")

// Client is the HTTP client every resolver and byte fetch goes through.
// Requests carry the tool's user agent and pass a shared rate limiter.
// There is deliberately no request timeout: runs are operator-driven and
// interruptible, and some of the legacy services are slow.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient builds a Client. An empty agent or non-positive rate selects the
// built-in defaults.
func NewClient(agent string, perSecond float64) *Client {
	if agent == "" {
		agent = userAgent
	}
	if perSecond <= 0 {
		perSecond = defaultRequestsPerSecond
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		httpClient: &http.Client{},
		userAgent:  agent,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Get performs a rate-limited GET. Redirects are followed; the final URL is
// available on the response via resp.Request.URL.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// FetchBytes GETs a URL and returns the raw body. Non-2xx statuses and
// zero-length bodies are errors; an empty body is never worth caching.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, ErrEmptyBody)
	}
	return b, nil
}
