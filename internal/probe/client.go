package probe

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"linkvet/internal/config"
)

// Client wraps an HTTP client with per-host rate limiting. A single Client is
// shared by all workers; per-request state lives in Attempt values.
type Client struct {
	httpClient *http.Client
	limiters   map[string]*rate.Limiter
	mu         sync.Mutex
	cfg        *config.Config
}

// NewClient creates a probing client with connection pooling and a hard
// per-request timeout. Redirects are followed automatically (Go's default
// 10-hop limit); the final URL after the chain is what gets reported.
func NewClient(cfg *config.Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	httpClient := &http.Client{
		Timeout:   time.Duration(cfg.Timeout) * time.Second,
		Transport: transport,
	}

	return &Client{
		httpClient: httpClient,
		limiters:   make(map[string]*rate.Limiter),
		cfg:        cfg,
	}
}

// Close releases idle connections held by the transport.
func (c *Client) Close() {
	if t, ok := c.httpClient.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}

// limiter returns the rate limiter for the given host, creating one on first
// use. 10 requests per second per host with burst of 1.
func (c *Client) limiter(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.limiters[host]; ok {
		return l
	}
	l := rate.NewLimiter(10, 1)
	c.limiters[host] = l
	return l
}
